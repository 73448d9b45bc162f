// iterator.go - schema-free record traversal: walks the page's singly
// linked record list reading only header bytes, for callers (the CLI's
// raw "-records" dump) that have no TableDef to decode column values with.
package record

import (
	"fmt"

	"github.com/wilhasse/go-innodb/format"
)

// WalkRecordsFromData walks records from raw page data following the
// compact record header's relative next offset. If skipSystem is true,
// INFIMUM and SUPREMUM are not returned. max limits the number of records
// traversed (safety net against a corrupt/cyclic next-offset chain).
func WalkRecordsFromData(pageNo uint32, pageData []byte, infimum Row, max int, skipSystem bool) ([]Row, error) {
	var out []Row
	cur := infimum
	if !skipSystem {
		out = append(out, cur)
	}
	for steps := 0; steps < max; steps++ {
		nextContent := cur.NextRecordPos()
		if cur.Header.NextRecOffset == 0 {
			break // usually SUPREMUM has next==0
		}
		if nextContent < format.FilHeaderSize+format.PageHeaderSize || nextContent >= format.PageSize-format.FilTrailerSize {
			return out, fmt.Errorf("%w: next content position out of bounds: %d", format.ErrMalformedRecord, nextContent)
		}
		nextHeaderPos := nextContent - format.RecordHeaderSize
		if nextHeaderPos < 0 {
			return out, fmt.Errorf("%w: negative next header pos", format.ErrMalformedRecord)
		}
		hdr, err := ParseRecordHeader(pageData, nextHeaderPos)
		if err != nil {
			return out, err
		}
		rec := Row{PageNumber: pageNo, Header: hdr, PrimaryKeyPos: nextContent}

		// Without column definitions we don't know each record's true
		// width, so this is a best-effort slice for display: up to the
		// next record (when known) or a fixed cap.
		dataSize := 0
		if hdr.NextRecOffset > 0 && hdr.NextRecOffset > format.RecordHeaderSize {
			dataSize = hdr.NextRecOffset - format.RecordHeaderSize
		} else if hdr.Type == format.RecSupremum {
			dataSize = format.SystemRecordBytes
		} else {
			dataSize = 100
			if maxPos := len(pageData) - nextContent; dataSize > maxPos {
				dataSize = maxPos
			}
		}

		if dataSize > 0 && nextContent+dataSize <= len(pageData) {
			rec.Data = pageData[nextContent : nextContent+dataSize]
		}

		if rec.Header.Type == format.RecSupremum {
			if !skipSystem {
				out = append(out, rec)
			}
			break
		}
		out = append(out, rec)
		cur = rec
	}
	return out, nil
}
