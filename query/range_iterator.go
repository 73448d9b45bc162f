// range_iterator.go - lazy forward scan over a contiguous key range, walking
// leaf pages via their sibling chain and stopping as soon as a record fails
// the upper bound.
package query

import (
	"context"
	"fmt"

	"github.com/wilhasse/go-innodb/page"
	"github.com/wilhasse/go-innodb/record"
	"github.com/wilhasse/go-innodb/tree"
)

// maxRecordsPerLeaf bounds a single leaf's record walk against a
// corrupted/cyclic next-offset chain.
const maxRecordsPerLeaf = 2000

// RangeIterator lazily decodes records between a lower and upper Bound, in
// ascending key order. Nothing is read from storage until the first call to
// Next: construction alone never touches the PageStore.
type RangeIterator struct {
	ctx        context.Context
	nav        *tree.Navigator
	rootPageNo uint32
	lower      Bound
	upper      Bound

	started bool
	done    bool
	err     error
	leaf    *page.IndexPage
	recs    []*record.Row
	idx     int
}

// NewRangeIterator constructs a RangeIterator. Use a zero Bound{} (Op: NOP)
// for an unbounded side.
func NewRangeIterator(ctx context.Context, nav *tree.Navigator, rootPageNo uint32, lower, upper Bound) *RangeIterator {
	return &RangeIterator{ctx: ctx, nav: nav, rootPageNo: rootPageNo, lower: lower, upper: upper}
}

// Next returns the next record in range, advancing across leaf page
// boundaries as needed. It returns (nil, false, nil) once the range is
// exhausted, and (nil, false, err) on decode or storage failure.
func (it *RangeIterator) Next() (*record.Row, bool, error) {
	if !it.started {
		it.init()
	}
	for {
		if it.err != nil {
			return nil, false, it.err
		}
		if it.done {
			return nil, false, nil
		}
		for it.idx < len(it.recs) {
			rec := it.recs[it.idx]
			it.idx++
			if !it.satisfiesLower(rec) {
				continue
			}
			if !it.satisfiesUpper(rec) {
				it.done = true
				return nil, false, nil
			}
			return rec, true, nil
		}

		next, ok, err := it.nav.NextLeaf(it.ctx, it.leaf)
		if err != nil {
			it.err = err
			return nil, false, err
		}
		if !ok {
			it.done = true
			return nil, false, nil
		}
		it.leaf = next
		it.loadLeaf()
	}
}

// Close reports whether the iterator terminated due to an error and, if so,
// returns it. Callers that stop consuming a range early don't need to call
// this; it exists for callers that want to distinguish a clean exhaustion
// from a mid-scan failure after their loop breaks.
func (it *RangeIterator) Close() error { return it.err }

func (it *RangeIterator) init() {
	it.started = true

	var leaf *page.IndexPage
	var err error
	if it.lower.Op == NOP {
		leaf, err = it.nav.LeftmostLeaf(it.ctx, it.rootPageNo)
	} else {
		leaf, err = it.nav.DescendToLeaf(it.ctx, it.rootPageNo, it.lower.Key)
	}
	if err != nil {
		it.err = fmt.Errorf("locate range start: %w", err)
		it.done = true
		return
	}
	it.leaf = leaf
	it.loadLeaf()
}

func (it *RangeIterator) loadLeaf() {
	recs, err := it.leaf.WalkRecords(it.ctx, it.nav.Parser(), maxRecordsPerLeaf)
	if err != nil {
		it.err = err
	}
	it.recs = recs
	it.idx = 0
}

func (it *RangeIterator) satisfiesLower(rec *record.Row) bool {
	if it.lower.Op == NOP {
		return true
	}
	c := it.nav.Comparator()(rec.Key, it.lower.Key)
	switch it.lower.Op {
	case GT:
		return c > 0
	case GTE:
		return c >= 0
	default:
		return true
	}
}

func (it *RangeIterator) satisfiesUpper(rec *record.Row) bool {
	if it.upper.Op == NOP {
		return true
	}
	c := it.nav.Comparator()(rec.Key, it.upper.Key)
	switch it.upper.Op {
	case LT:
		return c < 0
	case LTE:
		return c <= 0
	default:
		return true
	}
}
