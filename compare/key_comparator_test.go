package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilhasse/go-innodb/format"
)

func TestLexicographicIntegers(t *testing.T) {
	assert.Equal(t, 0, Lexicographic([]format.Value{int32(5)}, []format.Value{int32(5)}))
	assert.Negative(t, Lexicographic([]format.Value{int32(1)}, []format.Value{int32(2)}))
	assert.Positive(t, Lexicographic([]format.Value{int32(9)}, []format.Value{int32(2)}))
}

func TestLexicographicUnsigned(t *testing.T) {
	assert.Negative(t, Lexicographic([]format.Value{uint64(1)}, []format.Value{uint64(2)}))
	assert.Equal(t, 0, Lexicographic([]format.Value{uint64(7)}, []format.Value{uint64(7)}))
}

func TestLexicographicStringsAndBytes(t *testing.T) {
	assert.Negative(t, Lexicographic([]format.Value{"abc"}, []format.Value{"abd"}))
	assert.Equal(t, 0, Lexicographic([]format.Value{[]byte("x")}, []format.Value{[]byte("x")}))
	assert.Negative(t, Lexicographic([]format.Value{[]byte{1, 2}}, []format.Value{[]byte{1, 3}}))
}

func TestLexicographicNullsSortFirst(t *testing.T) {
	assert.Negative(t, Lexicographic([]format.Value{nil}, []format.Value{int32(0)}))
	assert.Positive(t, Lexicographic([]format.Value{int32(0)}, []format.Value{nil}))
	assert.Equal(t, 0, Lexicographic([]format.Value{nil}, []format.Value{nil}))
}

func TestLexicographicCompositeKeyFirstDifferingColumn(t *testing.T) {
	a := []format.Value{int32(1), "b"}
	b := []format.Value{int32(1), "c"}
	assert.Negative(t, Lexicographic(a, b))

	c := []format.Value{int32(2), "a"}
	assert.Positive(t, Lexicographic(c, a))
}

func TestLexicographicPrefixShorterSortsFirst(t *testing.T) {
	a := []format.Value{int32(1)}
	b := []format.Value{int32(1), int32(2)}
	assert.Negative(t, Lexicographic(a, b))
	assert.Positive(t, Lexicographic(b, a))
}

func TestLexicographicBool(t *testing.T) {
	assert.Negative(t, Lexicographic([]format.Value{false}, []format.Value{true}))
	assert.Equal(t, 0, Lexicographic([]format.Value{true}, []format.Value{true}))
}
