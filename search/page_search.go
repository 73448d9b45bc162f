// page_search.go - directory-guided search within a single INDEX page: a
// binary search over the page directory narrows to a small run of records,
// then a linear probe over that run's next-record chain lands on the exact
// record (or the correct insertion point).
package search

import (
	"context"
	"fmt"

	"github.com/wilhasse/go-innodb/compare"
	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/page"
	"github.com/wilhasse/go-innodb/record"
)

// maxLinearProbe bounds the walk within one directory slot's run of owned
// records against a corrupted/cyclic next-offset chain. InnoDB caps a
// slot's ownership at 8 records (4-8 typically), so this is a generous
// multiple of that, not a tight budget.
const maxLinearProbe = 64

// FindFloor returns the record with the greatest key that is less than or
// equal to target, following the page directory's physical ordering. If
// every real record's key is greater than target, it returns the page's
// INFIMUM sentinel (whose key is conceptually -infinity) rather than an
// error — callers that need the real record after it (the TreeNavigator's
// documented "smaller than smallest separator" corner case) can follow its
// NextRecordPos() themselves.
func FindFloor(ctx context.Context, pg *page.IndexPage, parser *record.CompactParser, target []format.Value, cmp compare.KeyComparator) (*record.Row, error) {
	n := pg.NumSlots()
	if n == 0 {
		return nil, fmt.Errorf("%w: page %d has no directory slots", format.ErrMalformedRecord, pg.Inner.PageNo)
	}

	keyOf := func(idx int) (int, error) {
		pos, err := pg.SlotContentPos(idx)
		if err != nil {
			return 0, err
		}
		rec, err := parser.ParseRecord(ctx, pg.Inner.Data, pos, pg.IsLeaf())
		if err != nil {
			return 0, err
		}
		switch rec.Header.Type {
		case format.RecInfimum:
			return -1, nil
		case format.RecSupremum:
			return 1, nil
		default:
			return cmp(rec.Key, target), nil
		}
	}

	lo, hi := 0, n-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		c, err := keyOf(mid)
		if err != nil {
			return nil, err
		}
		if c <= 0 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	pos, err := pg.SlotContentPos(lo)
	if err != nil {
		return nil, err
	}
	cur, err := parser.ParseRecord(ctx, pg.Inner.Data, pos, pg.IsLeaf())
	if err != nil {
		return nil, err
	}
	floor := cur
	for steps := 0; steps < maxLinearProbe; steps++ {
		nextPos := floor.NextRecordPos()
		nxt, err := parser.ParseRecord(ctx, pg.Inner.Data, nextPos, pg.IsLeaf())
		if err != nil {
			return nil, err
		}
		if nxt.Header.Type == format.RecSupremum {
			return floor, nil
		}
		if cmp(nxt.Key, target) > 0 {
			return floor, nil
		}
		floor = nxt
	}
	return nil, fmt.Errorf("%w: linear probe exceeded %d steps on page %d", format.ErrMalformedRecord, maxLinearProbe, pg.Inner.PageNo)
}

// FindExact is FindFloor narrowed to an exact match: it returns the record
// only if its key equals target, and ok=false otherwise (including when
// target falls before the smallest real key, in which case the returned
// record is the page's INFIMUM and must not be mistaken for a match).
func FindExact(ctx context.Context, pg *page.IndexPage, parser *record.CompactParser, target []format.Value, cmp compare.KeyComparator) (rec *record.Row, ok bool, err error) {
	floor, err := FindFloor(ctx, pg, parser, target, cmp)
	if err != nil {
		return nil, false, err
	}
	if floor.Header.Type == format.RecInfimum {
		return floor, false, nil
	}
	return floor, cmp(floor.Key, target) == 0, nil
}
