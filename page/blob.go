// blob.go - BLOB (overflow) page parsing for externally-stored columns.
package page

import (
	"fmt"

	"github.com/wilhasse/go-innodb/format"
)

// blobHeaderSize is the size of a BLOB page's own small header, which starts
// right after the FIL header: 4-byte next page number, 4-byte chunk length.
const blobHeaderSize = 8

// BlobPage is a single page in an overflow (LOB) chain.
type BlobPage struct {
	Inner   *InnerPage
	Next    uint32 // 0xFFFFFFFF (filNull) or 0 means end of chain
	HasNext bool
	Chunk   []byte // this page's contribution to the assembled value
}

// ParseBlobPage reads the chunk header and payload of a BLOB page.
func ParseBlobPage(ip *InnerPage) (*BlobPage, error) {
	if ip.FIL.PageType != format.PageTypeBlob {
		return nil, fmt.Errorf("%w: not a BLOB page: type=%d", format.ErrPageTypeMismatch, ip.FIL.PageType)
	}
	off := format.FilHeaderSize
	next, err := format.Be32(ip.Data, off)
	if err != nil {
		return nil, fmt.Errorf("%w: blob next pointer: %v", format.ErrMalformedRecord, err)
	}
	length, err := format.Be32(ip.Data, off+4)
	if err != nil {
		return nil, fmt.Errorf("%w: blob chunk length: %v", format.ErrMalformedRecord, err)
	}
	dataStart := off + blobHeaderSize
	dataEnd := dataStart + int(length)
	if dataEnd > format.PageSize-format.FilTrailerSize {
		return nil, fmt.Errorf("%w: blob chunk length %d overruns page", format.ErrMalformedRecord, length)
	}
	hasNext := next != 0xFFFFFFFF && next != 0
	return &BlobPage{
		Inner:   ip,
		Next:    next,
		HasNext: hasNext,
		Chunk:   ip.Data[dataStart:dataEnd],
	}, nil
}
