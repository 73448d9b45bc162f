// inner.go - Base page structure (16KB page with FIL header/trailer)
package page

import (
	"fmt"

	"github.com/wilhasse/go-innodb/format"
)

// InnerPage is a raw 16 KiB page plus its parsed FIL header/trailer.
type InnerPage struct {
	PageNo  uint32
	FIL     FilHeader
	Trailer FilTrailer
	Data    []byte // full 16KiB page bytes
}

// NewInnerPage parses the FIL header and trailer of a raw page buffer.
func NewInnerPage(pageNo uint32, buf []byte) (*InnerPage, error) {
	if len(buf) != format.PageSize {
		return nil, fmt.Errorf("%w: expected %dB page, got %d", format.ErrMalformedRecord, format.PageSize, len(buf))
	}
	h, err := ParseFilHeader(buf)
	if err != nil {
		return nil, err
	}
	t, err := ParseFilTrailer(buf)
	if err != nil {
		return nil, err
	}
	if uint32(h.LastModLSN&0xffffffff) != t.Low32LSN {
		return nil, fmt.Errorf("%w: low32 LSN mismatch: hdr=%#x trl=%#x", format.ErrMalformedRecord, uint32(h.LastModLSN), t.Low32LSN)
	}
	return &InnerPage{PageNo: pageNo, FIL: h, Trailer: t, Data: buf}, nil
}

func (ip *InnerPage) PageType() format.PageType { return ip.FIL.PageType }

// NextPageNo returns the FIL header's next-page pointer, or false if absent.
func (ip *InnerPage) NextPageNo() (uint32, bool) {
	if ip.FIL.Next == nil {
		return 0, false
	}
	return *ip.FIL.Next, true
}

// PrevPageNo returns the FIL header's previous-page pointer, or false if absent.
func (ip *InnerPage) PrevPageNo() (uint32, bool) {
	if ip.FIL.Prev == nil {
		return 0, false
	}
	return *ip.FIL.Prev, true
}
