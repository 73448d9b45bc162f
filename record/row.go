// row.go - decoded record: header, position, and (when parsed with a schema)
// typed column values. Renamed/extended from the teacher's GenericRecord.
package record

import "github.com/wilhasse/go-innodb/format"

// Row is a single decoded record, user or system.
type Row struct {
	PageNumber      uint32
	Header          RecordHeader
	PrimaryKeyPos   int // absolute offset where this record's content starts
	ChildPageNumber uint32 // node-pointer records only (Header.Type == RecNodePointer)
	Data            []byte // raw record bytes, best-effort (debugging/CLI use)

	// Key holds the primary-key column values in primary-key column order
	// (TableDef.PrimaryKeyColumns). Populated
	// only when the record was decoded with a schema (CompactParser).
	Key []format.Value

	// Values holds every decoded column's value, in schema column order.
	// ValuesByName is the same values keyed by column name (teacher's
	// original convenience accessor, GetValue).
	Values       []format.Value
	ValuesByName map[string]format.Value
}

// NextRecordPos returns the absolute offset of the next record in the
// page's singly linked list. The header stores a signed 16-bit relative
// offset, so the raw sum can land outside [0, page size) when the offset
// wraps; fold it back into page coordinates before the caller uses it.
func (r Row) NextRecordPos() int {
	pos := (r.PrimaryKeyPos + r.Header.NextRecOffset) % format.PageSize
	if pos < 0 {
		pos += format.PageSize
	}
	return pos
}

// IsSystem reports whether this is the infimum or supremum sentinel.
func (r Row) IsSystem() bool {
	return r.Header.Type == format.RecInfimum || r.Header.Type == format.RecSupremum
}

// GetValue returns a column's decoded value by name (teacher convenience API).
func (r Row) GetValue(name string) (format.Value, bool) {
	v, ok := r.ValuesByName[name]
	return v, ok
}
