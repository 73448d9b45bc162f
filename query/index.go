// index.go - the query-facing facade over one B+ tree: point lookup, full
// traversal, and bounded range scan, each backed by the same Navigator.
package query

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wilhasse/go-innodb/compare"
	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/record"
	"github.com/wilhasse/go-innodb/schema"
	"github.com/wilhasse/go-innodb/store"
	"github.com/wilhasse/go-innodb/tree"
)

// Index is a read-only handle on a single clustered or secondary B+ tree,
// rooted at RootPageNo within a tablespace reachable through a PageStore.
type Index struct {
	RootPageNo uint32
	TableDef   *schema.TableDef

	nav *tree.Navigator
}

// NewIndex builds an Index. cmp defaults to compare.Lexicographic and log
// to a no-op logger when nil.
func NewIndex(ps store.PageStore, tableDef *schema.TableDef, rootPageNo uint32, cmp compare.KeyComparator, opts record.Options, log *zap.SugaredLogger) *Index {
	return &Index{
		RootPageNo: rootPageNo,
		TableDef:   tableDef,
		nav:        tree.NewNavigator(ps, tableDef, cmp, opts, log),
	}
}

// PointLookup resolves a single key to its row, if present.
func (ix *Index) PointLookup(ctx context.Context, key []interface{}) (*record.Row, bool, error) {
	if err := ix.validateKey(key); err != nil {
		return nil, false, err
	}
	return ix.nav.PointLookup(ctx, ix.RootPageNo, key)
}

// TraverseAll decodes every user record in the tree, left to right.
func (ix *Index) TraverseAll(ctx context.Context) ([]*record.Row, error) {
	return ix.nav.TraverseAll(ctx, ix.RootPageNo)
}

// Range returns a lazily-evaluated iterator over [lower, upper]. Passing a
// zero Bound on either side leaves that side unbounded. Bounds are validated
// before any PageStore access: an inverted range, a NOP paired with a
// non-empty key (or a non-NOP bound with an empty or wrong-arity key), and a
// null key element all report format.ErrInvalidArgument.
func (ix *Index) Range(ctx context.Context, lower, upper Bound) (*RangeIterator, error) {
	if err := ix.validateBound(lower); err != nil {
		return nil, err
	}
	if err := ix.validateBound(upper); err != nil {
		return nil, err
	}
	if lower.Op != NOP && upper.Op != NOP {
		if ix.nav.Comparator()(lower.Key, upper.Key) > 0 {
			return nil, fmt.Errorf("%w: range lower bound is greater than upper bound", format.ErrInvalidArgument)
		}
	}
	return NewRangeIterator(ctx, ix.nav, ix.RootPageNo, lower, upper), nil
}

// validateKey enforces spec.md §7's InvalidArgument conditions for a
// standalone key: arity must match the primary key's column count, and no
// element may be nil.
func (ix *Index) validateKey(key []interface{}) error {
	pkCols := ix.TableDef.PrimaryKeyColumns()
	if len(key) != len(pkCols) {
		return fmt.Errorf("%w: key has %d elements, primary key has %d columns", format.ErrInvalidArgument, len(key), len(pkCols))
	}
	for i, v := range key {
		if v == nil {
			return fmt.Errorf("%w: key element %d is nil", format.ErrInvalidArgument, i)
		}
	}
	return nil
}

// validateBound enforces spec.md §4.6's "empty keys and NOP must appear
// together" rule in addition to validateKey's arity/null checks.
func (ix *Index) validateBound(b Bound) error {
	if b.Op == NOP {
		if len(b.Key) != 0 {
			return fmt.Errorf("%w: NOP bound must have an empty key", format.ErrInvalidArgument)
		}
		return nil
	}
	if len(b.Key) == 0 {
		return fmt.Errorf("%w: bound operator %s requires a non-empty key", format.ErrInvalidArgument, b.Op)
	}
	return ix.validateKey(b.Key)
}
