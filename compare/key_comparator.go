// key_comparator.go - ordering over decoded composite keys, used throughout
// the B+ tree descent and range scan to decide where a key sits relative to
// a page's separator records.
package compare

import (
	"bytes"
	"reflect"

	"github.com/wilhasse/go-innodb/format"
)

// KeyComparator orders two composite keys (slices of decoded column
// values, in primary-key column order). It returns a negative number if a
// sorts before b, zero if they are equal, and a positive number if a sorts
// after b. NULL (a nil format.Value) sorts before every non-NULL value, per
// InnoDB's index ordering.
type KeyComparator func(a, b []format.Value) int

// Lexicographic compares keys column by column, returning on the first
// column that differs. A shorter key that is a prefix of a longer one sorts
// first (used when comparing a caller-supplied partial key against a full
// clustered index key).
func Lexicographic(a, b []format.Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compareValue(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareValue(a, b format.Value) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strCompare(av, bv)
		}
	case []byte:
		if bv, ok := b.([]byte); ok {
			return bytes.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return boolCompare(av, bv)
		}
	}

	if au, bu, ok := bothUnsigned(a, b); ok {
		return uintCompare(au, bu)
	}
	if as, bs, ok := bothSigned(a, b); ok {
		return intCompare(as, bs)
	}

	// Mixed signed/unsigned or otherwise incomparable: fall back to a
	// stable textual comparison rather than panicking on a type assertion.
	return strCompare(toString(a), toString(b))
}

func strCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func uintCompare(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func intCompare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func bothUnsigned(a, b format.Value) (uint64, uint64, bool) {
	au, aok := asUint(a)
	bu, bok := asUint(b)
	return au, bu, aok && bok
}

func bothSigned(a, b format.Value) (int64, int64, bool) {
	as, aok := asInt(a)
	bs, bok := asInt(b)
	return as, bs, aok && bok
}

func asUint(v format.Value) (uint64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	default:
		return 0, false
	}
}

func asInt(v format.Value) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	default:
		return 0, false
	}
}

func toString(v format.Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	return reflect.ValueOf(v).String()
}
