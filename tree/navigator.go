// navigator.go - B+ tree descent: root-to-leaf point lookup and leftmost-leaf
// plus sibling-chain traversal for full scans and range queries.
package tree

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/wilhasse/go-innodb/compare"
	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/page"
	"github.com/wilhasse/go-innodb/record"
	"github.com/wilhasse/go-innodb/search"
	"github.com/wilhasse/go-innodb/schema"
	"github.com/wilhasse/go-innodb/store"
)

// maxRecordsPerPage bounds a single page's record walk against a
// corrupted/cyclic next-offset chain; real 16 KiB pages hold far fewer
// records than this in practice.
const maxRecordsPerPage = 2000

// Navigator walks a clustered or secondary B+ tree one page at a time,
// resolving page numbers through a PageStore and decoding records with a
// schema-driven CompactParser.
type Navigator struct {
	store    store.PageStore
	tableDef *schema.TableDef
	parser   *record.CompactParser
	cmp      compare.KeyComparator
	log      *zap.SugaredLogger
}

// NewNavigator builds a Navigator. cmp defaults to compare.Lexicographic
// and log defaults to a no-op logger when nil.
func NewNavigator(ps store.PageStore, tableDef *schema.TableDef, cmp compare.KeyComparator, opts record.Options, log *zap.SugaredLogger) *Navigator {
	if cmp == nil {
		cmp = compare.Lexicographic
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Navigator{
		store:    ps,
		tableDef: tableDef,
		parser:   record.NewCompactParser(tableDef, ps, opts),
		cmp:      cmp,
		log:      log,
	}
}

// loadIndexPage loads pageNo and parses it as an INDEX page, transparently
// stepping over up to format.MaxSDISkips Serialized Dictionary Information
// pages that a root page number sometimes resolves through first.
func (n *Navigator) loadIndexPage(ctx context.Context, pageNo uint32) (*page.IndexPage, error) {
	for skips := 0; ; skips++ {
		buf, err := n.store.Load(ctx, pageNo)
		if err != nil {
			return nil, fmt.Errorf("load page %d: %w", pageNo, err)
		}
		inner, err := page.NewInnerPage(pageNo, buf)
		if err != nil {
			return nil, err
		}
		if inner.PageType() == format.PageTypeSDI {
			if skips >= format.MaxSDISkips {
				return nil, fmt.Errorf("%w: exceeded %d SDI page skips starting at page %d", format.ErrPageTypeMismatch, format.MaxSDISkips, pageNo)
			}
			next, ok := inner.NextPageNo()
			if !ok {
				return nil, fmt.Errorf("%w: SDI page %d has no successor to skip to", format.ErrPageTypeMismatch, pageNo)
			}
			pageNo = next
			continue
		}
		return page.ParseIndexPage(inner)
	}
}

// DescendToLeaf walks from rootPageNo down to the leaf page that key would
// belong under, following the greatest-lower-bound child pointer at each
// non-leaf level.
func (n *Navigator) DescendToLeaf(ctx context.Context, rootPageNo uint32, key []format.Value) (*page.IndexPage, error) {
	pageNo := rootPageNo
	for {
		pg, err := n.loadIndexPage(ctx, pageNo)
		if err != nil {
			return nil, err
		}
		if pg.IsLeaf() {
			return pg, nil
		}
		child, err := n.childFor(ctx, pg, key)
		if err != nil {
			return nil, err
		}
		pageNo = child
	}
}

// childFor resolves which child page to descend into for key, given a
// non-leaf page pg. It special-cases a key smaller than every real
// separator on the page: the infimum carries no child pointer, so descent
// must follow the first real record instead of its (nonexistent)
// predecessor.
func (n *Navigator) childFor(ctx context.Context, pg *page.IndexPage, key []format.Value) (uint32, error) {
	floor, err := search.FindFloor(ctx, pg, n.parser, key, n.cmp)
	if err != nil {
		return 0, err
	}
	if floor.Header.Type != format.RecInfimum {
		return floor.ChildPageNumber, nil
	}
	curr, err := n.firstRealRecord(ctx, pg)
	if err != nil {
		return 0, err
	}
	return curr.ChildPageNumber, nil
}

func (n *Navigator) firstRealRecord(ctx context.Context, pg *page.IndexPage) (*record.Row, error) {
	pos := pg.Infimum.NextRecordPos()
	rec, err := n.parser.ParseRecord(ctx, pg.Inner.Data, pos, pg.IsLeaf())
	if err != nil {
		return nil, err
	}
	if rec.Header.Type == format.RecSupremum {
		return nil, fmt.Errorf("%w: non-leaf page %d has no records", format.ErrMalformedRecord, pg.Inner.PageNo)
	}
	return rec, nil
}

// PointLookup resolves a single clustered-index key to its row, if present.
func (n *Navigator) PointLookup(ctx context.Context, rootPageNo uint32, key []format.Value) (*record.Row, bool, error) {
	leaf, err := n.DescendToLeaf(ctx, rootPageNo, key)
	if err != nil {
		return nil, false, err
	}
	return search.FindExact(ctx, leaf, n.parser, key, n.cmp)
}

// LeftmostLeaf walks from rootPageNo down the leftmost child at every
// non-leaf level, returning the first leaf page in key order.
func (n *Navigator) LeftmostLeaf(ctx context.Context, rootPageNo uint32) (*page.IndexPage, error) {
	pageNo := rootPageNo
	for {
		pg, err := n.loadIndexPage(ctx, pageNo)
		if err != nil {
			return nil, err
		}
		if pg.IsLeaf() {
			return pg, nil
		}
		first, err := n.firstRealRecord(ctx, pg)
		if err != nil {
			return nil, err
		}
		pageNo = first.ChildPageNumber
	}
}

// NextLeaf loads the leaf page following cur in the sibling chain, or
// returns ok=false at the rightmost leaf.
func (n *Navigator) NextLeaf(ctx context.Context, cur *page.IndexPage) (*page.IndexPage, bool, error) {
	next, ok := cur.NextSiblingPageNo()
	if !ok {
		return nil, false, nil
	}
	pg, err := n.loadIndexPage(ctx, next)
	if err != nil {
		return nil, false, err
	}
	return pg, true, nil
}

// Parser exposes the Navigator's schema-bound record decoder so callers
// (the range iterator, the CLI) can parse records off leaves it returns.
func (n *Navigator) Parser() *record.CompactParser { return n.parser }

// Comparator exposes the key comparator in use.
func (n *Navigator) Comparator() compare.KeyComparator { return n.cmp }

// TraverseAll decodes every user record in the tree, leaf by leaf,
// left to right. A single page's decode failure is collected as a
// non-fatal warning rather than aborting the whole traversal; the
// aggregated warnings (if any) are logged once traversal completes.
func (n *Navigator) TraverseAll(ctx context.Context, rootPageNo uint32) ([]*record.Row, error) {
	leaf, err := n.LeftmostLeaf(ctx, rootPageNo)
	if err != nil {
		return nil, err
	}

	var rows []*record.Row
	var warnings *multierror.Error

	for {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		pageRows, err := leaf.WalkRecords(ctx, n.parser, maxRecordsPerPage)
		if err != nil {
			warnings = multierror.Append(warnings, fmt.Errorf("page %d: %w", leaf.Inner.PageNo, err))
		} else if got := len(pageRows); got != int(leaf.Hdr.NumUserRecs) {
			warnings = multierror.Append(warnings, fmt.Errorf("page %d: chained %d user records, index header claims %d", leaf.Inner.PageNo, got, leaf.Hdr.NumUserRecs))
		}
		rows = append(rows, pageRows...)

		next, ok, err := n.NextLeaf(ctx, leaf)
		if err != nil {
			warnings = multierror.Append(warnings, fmt.Errorf("advance past page %d: %w", leaf.Inner.PageNo, err))
			break
		}
		if !ok {
			break
		}
		leaf = next
	}

	if warnings != nil {
		n.log.Warnw("tree traversal completed with warnings", "error", warnings.ErrorOrNil())
	}
	return rows, nil
}
