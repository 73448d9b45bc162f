// index.go - INDEX page parsing with records and directory
package page

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/record"
)

// IndexPage is a parsed B+ tree node: clustered or secondary index, leaf or
// non-leaf. All compact-format INDEX pages share this shape.
type IndexPage struct {
	Inner    *InnerPage
	Hdr      record.IndexHeader
	Fseg     FsegHeader
	Infimum  record.Row
	Supremum record.Row

	// DirSlots holds each directory slot's absolute content offset, in
	// ascending key order: slot 0 is the infimum, the last slot is the
	// supremum. InnoDB stores these physically reversed at the tail of
	// the page; ParseIndexPage has already un-reversed them here.
	DirSlots []uint16
}

func ParseIndexPage(ip *InnerPage) (*IndexPage, error) {
	if ip.FIL.PageType != format.PageTypeIndex {
		return nil, fmt.Errorf("%w: not an INDEX page: type=%d", format.ErrPageTypeMismatch, ip.FIL.PageType)
	}
	hdr, err := record.ParseIndexHeader(ip.Data, format.FilHeaderSize)
	if err != nil {
		return nil, err
	}
	if hdr.Format != format.FormatCompact {
		return nil, fmt.Errorf("only compact pages supported (format=%d)", hdr.Format)
	}
	fseg, err := ParseFsegHeader(ip.Data, format.FilHeaderSize+36)
	if err != nil {
		return nil, err
	}

	cur := format.FilHeaderSize + format.PageHeaderSize

	// INFIMUM
	infHdr, err := record.ParseRecordHeader(ip.Data, cur)
	if err != nil {
		return nil, err
	}
	cur += format.RecordHeaderSize
	if !bytes.Equal(ip.Data[cur:cur+format.SystemRecordBytes], format.LitInfimum) {
		return nil, fmt.Errorf("%w: INFIMUM literal mismatch at %d", format.ErrMalformedRecord, cur)
	}
	inf := record.Row{PageNumber: ip.PageNo, Header: infHdr, PrimaryKeyPos: cur, Data: ip.Data[cur : cur+format.SystemRecordBytes]}
	cur += format.SystemRecordBytes

	// SUPREMUM
	supHdr, err := record.ParseRecordHeader(ip.Data, cur)
	if err != nil {
		return nil, err
	}
	cur += format.RecordHeaderSize
	if !bytes.Equal(ip.Data[cur:cur+format.SystemRecordBytes], format.LitSupremum) {
		return nil, fmt.Errorf("%w: SUPREMUM literal mismatch at %d", format.ErrMalformedRecord, cur)
	}
	sup := record.Row{PageNumber: ip.PageNo, Header: supHdr, PrimaryKeyPos: cur, Data: ip.Data[cur : cur+format.SystemRecordBytes]}

	// Directory slots read from the end of page and reversed into
	// ascending key order.
	n := int(hdr.NumDirSlots)
	dir := make([]uint16, n)
	start := format.PageSize - format.FilTrailerSize - n*format.PageDirSlotSize
	for i := 0; i < n; i++ {
		val, _ := format.Be16(ip.Data, start+i*2)
		dir[n-i-1] = val
	}

	return &IndexPage{
		Inner: ip, Hdr: hdr, Fseg: fseg,
		Infimum: inf, Supremum: sup, DirSlots: dir,
	}, nil
}

func (p *IndexPage) IsLeaf() bool { return p.Hdr.PageLevel == 0 }
func (p *IndexPage) IsRoot() bool { return p.Inner.FIL.Prev == nil && p.Inner.FIL.Next == nil }

// UsedBytes matches the calculation used by comparable open-source InnoDB
// page readers: heap top plus directory and trailer overhead, less garbage.
func (p *IndexPage) UsedBytes() int {
	return int(p.Hdr.HeapTop) + format.FilTrailerSize + int(p.Hdr.NumDirSlots)*format.PageDirSlotSize - int(p.Hdr.GarbageSpace)
}

// NumSlots returns the number of page directory slots.
func (p *IndexPage) NumSlots() int { return len(p.DirSlots) }

// SlotContentPos returns the absolute content offset the i-th directory
// slot owns, in ascending key order (slot 0 = infimum).
func (p *IndexPage) SlotContentPos(i int) (int, error) {
	if i < 0 || i >= len(p.DirSlots) {
		return 0, fmt.Errorf("%w: directory slot %d out of range [0,%d)", format.ErrInvalidArgument, i, len(p.DirSlots))
	}
	return int(p.DirSlots[i]), nil
}

// NextSiblingPageNo returns the page number of the next page at this level,
// per the FIL header's next-page pointer.
func (p *IndexPage) NextSiblingPageNo() (uint32, bool) { return p.Inner.NextPageNo() }

// PrevSiblingPageNo returns the page number of the previous page at this
// level, per the FIL header's previous-page pointer.
func (p *IndexPage) PrevSiblingPageNo() (uint32, bool) { return p.Inner.PrevPageNo() }

// WalkRaw walks records on a page following the compact record header's
// relative next offset, without decoding column values. Used by callers
// with no TableDef (the CLI's schema-free "-records" dump).
func (p *IndexPage) WalkRaw(max int, skipSystem bool) ([]record.Row, error) {
	if p.Hdr.Format != format.FormatCompact {
		return nil, fmt.Errorf("only compact format supported in WalkRaw")
	}
	return record.WalkRecordsFromData(p.Inner.PageNo, p.Inner.Data, p.Infimum, max, skipSystem)
}

// WalkRecords walks every user record on the page, in physical next-record
// order, decoding each with parser. max bounds the traversal against a
// corrupt/cyclic next-offset chain.
func (p *IndexPage) WalkRecords(ctx context.Context, parser *record.CompactParser, max int) ([]*record.Row, error) {
	var out []*record.Row
	pos := p.Infimum.NextRecordPos()
	for steps := 0; steps < max; steps++ {
		if pos < format.PageDataOff || pos >= format.PageSize-format.FilTrailerSize {
			return out, fmt.Errorf("%w: record position out of bounds: %d", format.ErrMalformedRecord, pos)
		}
		rec, err := parser.ParseRecord(ctx, p.Inner.Data, pos, p.IsLeaf())
		if err != nil {
			return out, err
		}
		if rec.Header.Type == format.RecSupremum {
			break
		}
		rec.PageNumber = p.Inner.PageNo
		out = append(out, rec)
		if rec.Header.NextRecOffset == 0 {
			break
		}
		pos = rec.NextRecordPos()
	}
	return out, nil
}
