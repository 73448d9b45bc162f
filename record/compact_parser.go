// compact_parser.go - Parser for InnoDB compact record format
package record

// NOTE: Compact format layout: [varlen headers][NULL bitmap][5B header][data]
import (
	"context"
	"errors"
	"fmt"

	"github.com/wilhasse/go-innodb/column"
	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/schema"
	"github.com/wilhasse/go-innodb/store"
)

// Options tunes CompactParser behavior for conditions that aren't strictly
// malformed data but that a caller may want to treat as fatal rather than
// silently degraded.
type Options struct {
	// ThrowOnUnsupportedNewLOB makes ParseRecord return
	// format.ErrUnsupportedLobFormat instead of substituting nil when an
	// externally-stored column's overflow chain turns out to use the
	// newer LOB_FIRST page format (MySQL 8.0 "large object" pages) rather
	// than the classic BLOB page chain this reader understands.
	ThrowOnUnsupportedNewLOB bool
}

// varLenInfo is one variable-length column's decoded length-array entry.
type varLenInfo struct {
	length   int
	external bool
}

// CompactParser parses records in InnoDB compact format
type CompactParser struct {
	tableDef *schema.TableDef
	opts     Options
	store    store.PageStore // optional; required only to resolve overflow columns
}

// NewCompactParser creates a new compact record parser. store may be nil if
// the caller knows the table has no externally-stored (overflow) columns;
// ParseRecord returns an error if that assumption turns out to be wrong.
func NewCompactParser(tableDef *schema.TableDef, ps store.PageStore, opts Options) *CompactParser {
	return &CompactParser{
		tableDef: tableDef,
		opts:     opts,
		store:    ps,
	}
}

// ParseRecord parses a record from raw page data. ctx governs any overflow
// page loads performed while assembling an externally-stored column.
func (p *CompactParser) ParseRecord(ctx context.Context, pageData []byte, recordPos int, isLeafPage bool) (*Row, error) {
	// The actual record content starts at recordPos, but the variable
	// length headers and NULL bitmap live just before the record header.
	headerPos := recordPos - format.RecordHeaderSize
	if headerPos < 0 {
		return nil, fmt.Errorf("%w: invalid record position %d", format.ErrMalformedRecord, recordPos)
	}

	header, err := ParseRecordHeader(pageData, headerPos)
	if err != nil {
		return nil, fmt.Errorf("parse record header: %w", err)
	}

	rec := &Row{
		PageNumber:    0,
		Header:        header,
		PrimaryKeyPos: recordPos,
		ValuesByName:  make(map[string]format.Value),
	}

	// Handle special records (INFIMUM/SUPREMUM)
	if header.Type == format.RecInfimum || header.Type == format.RecSupremum {
		end := recordPos + format.SystemRecordBytes
		if end <= len(pageData) {
			rec.Data = pageData[recordPos:end]
		}
		return rec, nil
	}

	// Node-pointer (non-leaf) records carry only the key columns plus a
	// trailing 4-byte child page number; they have no transaction fields.
	isNodePointer := header.Type == format.RecNodePointer

	// Step 1: Parse NULL bitmap (only for leaf pages with nullable columns)
	nullBitmap := make([]bool, p.tableDef.NullableColumnCount())
	nullBitmapSize := 0

	if isLeafPage && p.tableDef.HasNullableColumn() {
		nullBitmapSize = p.tableDef.NullBitmapSize()
		nullBitmapPos := headerPos - nullBitmapSize
		if nullBitmapPos < 0 {
			return nil, fmt.Errorf("%w: invalid NULL bitmap position", format.ErrMalformedRecord)
		}

		nullBytes := pageData[nullBitmapPos:headerPos]
		nullIdx := 0
		for range p.tableDef.NullableColumns() {
			byteIdx := nullIdx / 8
			bitIdx := nullIdx % 8
			if byteIdx < len(nullBytes) {
				nullBitmap[nullIdx] = (nullBytes[byteIdx] & (1 << bitIdx)) != 0
			}
			nullIdx++
		}
	}

	// Step 2: Parse variable-length field headers.
	// Headers are stored right-to-left before the NULL bitmap: the first
	// varlen column's length sits closest to the record header. The loop
	// below therefore walks varColumns forward while varHeaderPos walks
	// backward, appending one entry per column in column order.
	varLengths := make([]varLenInfo, 0, len(p.tableDef.VariableLengthColumns()))

	if p.tableDef.HasVariableLengthColumn() {
		varHeaderPos := headerPos - nullBitmapSize

		var varColumns []*schema.Column
		if isLeafPage || isNodePointer {
			if isNodePointer {
				varColumns = p.tableDef.GetPrimaryKeyVarLenColumns()
			} else {
				varColumns = p.tableDef.VariableLengthColumns()
			}
		} else {
			varColumns = p.tableDef.VariableLengthColumns()
		}

		for i := 0; i < len(varColumns); i++ {
			col := varColumns[i]

			isNull := false
			if col.Nullable {
				for idx, nullCol := range p.tableDef.NullableColumns() {
					if nullCol.Name == col.Name && nullBitmap[idx] {
						isNull = true
						break
					}
				}
			}

			if isNull {
				varLengths = append(varLengths, varLenInfo{})
				continue
			}

			varHeaderPos--
			if varHeaderPos < 0 {
				return nil, fmt.Errorf("%w: invalid variable header position", format.ErrMalformedRecord)
			}

			length := int(pageData[varHeaderPos])
			external := false

			if p.needsTwoByteLength(col, length) {
				varHeaderPos--
				if varHeaderPos < 0 {
					return nil, fmt.Errorf("%w: invalid variable header position", format.ErrMalformedRecord)
				}

				// High byte is in the first byte read, with the external
				// (overflow) flag in bit 6 and length bits in bits 0-5.
				external = (length & 0x40) != 0
				length = ((length & 0x3F) << 8) | int(pageData[varHeaderPos])
			}

			varLengths = append(varLengths, varLenInfo{length: length, external: external})
		}
	}

	// Step 3: Parse actual column data starting from recordPos.
	dataPos := recordPos
	varLenIdx := 0

	decodeOne := func(col *schema.Column) error {
		isNull := false
		if col.Nullable {
			for idx, nullCol := range p.tableDef.NullableColumns() {
				if nullCol.Name == col.Name && nullBitmap[idx] {
					isNull = true
					break
				}
			}
		}

		if isNull {
			rec.ValuesByName[col.Name] = nil
			if col.IsVariableLength() {
				varLenIdx++
			}
			return nil
		}

		var info varLenInfo
		if col.IsVariableLength() {
			if varLenIdx < len(varLengths) {
				info = varLengths[varLenIdx]
			}
			varLenIdx++
		}

		if info.external {
			value, consumed, err := p.decodeExternal(ctx, pageData, dataPos, col)
			if err != nil {
				return fmt.Errorf("column %s: %w", col.Name, err)
			}
			rec.ValuesByName[col.Name] = value
			dataPos += consumed
			return nil
		}

		value, bytesRead, err := column.ParseColumn(pageData, dataPos, col, info.length)
		if err != nil {
			return fmt.Errorf("parse column %s: %w", col.Name, err)
		}
		rec.ValuesByName[col.Name] = value
		dataPos += bytesRead
		return nil
	}

	key := make([]format.Value, 0, len(p.tableDef.PrimaryKeyColumns()))
	for _, col := range p.tableDef.PrimaryKeyColumns() {
		if err := decodeOne(col); err != nil {
			return nil, err
		}
		key = append(key, rec.ValuesByName[col.Name])
	}
	rec.Key = key

	if isNodePointer {
		// Node pointer records end in a 4-byte child page number instead
		// of the leaf's transaction fields and remaining columns.
		childPageNo, err := format.Be32(pageData, dataPos)
		if err != nil {
			return nil, fmt.Errorf("%w: read child page number: %v", format.ErrMalformedRecord, err)
		}
		rec.ChildPageNumber = childPageNo
		dataPos += 4

		values := make([]format.Value, p.tableDef.ColumnCount())
		for _, col := range p.tableDef.PrimaryKeyColumns() {
			values[col.Ordinal] = rec.ValuesByName[col.Name]
		}
		rec.Values = values

		endPos := dataPos
		if endPos <= len(pageData) {
			rec.Data = pageData[recordPos:endPos]
		}
		return rec, nil
	}

	// Leaf clustered-index records carry a 6-byte transaction id and
	// 7-byte roll pointer right after the primary key columns.
	if isLeafPage {
		dataPos += format.TrxRollPtrSize
	}

	for _, col := range p.tableDef.Columns {
		if col.IsPrimaryKey {
			continue
		}
		if err := decodeOne(col); err != nil {
			return nil, err
		}
	}

	values := make([]format.Value, p.tableDef.ColumnCount())
	for _, col := range p.tableDef.Columns {
		values[col.Ordinal] = rec.ValuesByName[col.Name]
	}
	rec.Values = values

	endPos := recordPos + header.NextRecOffset
	if header.NextRecOffset <= 0 || endPos > len(pageData) {
		endPos = dataPos
		if endPos-recordPos > 100 {
			endPos = recordPos + 100
		}
	}
	if endPos > recordPos && endPos <= len(pageData) {
		rec.Data = pageData[recordPos:endPos]
	}

	return rec, nil
}

// decodeExternal reads the 768-byte on-page prefix and 20-byte overflow
// pointer at dataPos and, when a PageStore was configured, walks the BLOB
// page chain to assemble the full value. It returns the number of on-page
// bytes consumed so the caller can keep decoding subsequent columns: the
// prefix+pointer size once the pointer has been read and a PageStore is
// configured (also when the chain walk fails), and 0 on the earlier errors.
func (p *CompactParser) decodeExternal(ctx context.Context, pageData []byte, dataPos int, col *schema.Column) (format.Value, int, error) {
	const onPageSize = format.OverflowPrefixSize + format.OverflowPointerSize
	if dataPos+onPageSize > len(pageData) {
		return nil, 0, fmt.Errorf("%w: truncated overflow prefix/pointer", format.ErrMalformedRecord)
	}

	prefix := pageData[dataPos : dataPos+format.OverflowPrefixSize]
	ptr, err := ParseOverflowPointer(pageData, dataPos+format.OverflowPrefixSize)
	if err != nil {
		return nil, 0, err
	}

	if p.store == nil {
		return nil, 0, fmt.Errorf("%w: column %s is externally stored but no PageStore is configured", format.ErrUnsupportedLobFormat, col.Name)
	}

	value, err := ReadOverflow(ctx, p.store, prefix, ptr, col)
	if err != nil {
		if errors.Is(err, format.ErrUnsupportedLobFormat) {
			if p.opts.ThrowOnUnsupportedNewLOB {
				return nil, onPageSize, err
			}
			return nil, onPageSize, nil
		}
		return nil, onPageSize, err
	}
	return value, onPageSize, nil
}

// needsTwoByteLength checks if a variable-length column needs 2-byte length header
func (p *CompactParser) needsTwoByteLength(col *schema.Column, firstByte int) bool {
	if firstByte <= 127 {
		return false
	}
	switch col.Type {
	case schema.TypeText, schema.TypeMediumText, schema.TypeLongText,
		schema.TypeBlob, schema.TypeMediumBlob, schema.TypeLongBlob:
		return true
	case schema.TypeVarchar, schema.TypeVarBinary:
		return col.Length*col.MaxBytesPerChar() > 255
	}
	return false
}
