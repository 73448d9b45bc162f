// types.go - Basic type definitions and constants shared by page/ and record/
package format

// Sizes and constants
const (
	PageSize          = 16 * 1024 // 16384
	FilHeaderSize     = 38
	FilTrailerSize    = 8
	RecordHeaderSize  = 5 // compact header (3B bits + 2B next)
	SystemRecordBytes = 8 // "infimum\x00" or "supremum" literal
	PageDirSlotSize   = 2

	// Index (page) header = 36 bytes
	// FSEG header (immediately after) = 20 bytes
	PageHeaderSize = 56
	PageDataOff    = FilHeaderSize + PageHeaderSize

	// MaxSDISkips bounds how many SDI pages a caller may step over while
	// looking for the next INDEX page (spec: "at most two such skips").
	MaxSDISkips = 2

	// OverflowPrefixSize is the number of on-page bytes stored before the
	// overflow pointer for an externally-stored column.
	OverflowPrefixSize = 768
	// OverflowPointerSize is the size of the {space,page,offset,length} pointer.
	OverflowPointerSize = 20

	// TrxRollPtrSize is the combined width of the hidden 6-byte DB_TRX_ID
	// and 7-byte DB_ROLL_PTR columns InnoDB appends after a clustered
	// index leaf record's primary key columns.
	TrxRollPtrSize = 13
)

// Page types (subset)
type PageType uint16

const (
	PageTypeAllocated PageType = 0
	PageTypeIndex     PageType = 17855
	PageTypeUndoLog   PageType = 2
	PageTypeSDI       PageType = 17853
	PageTypeBlob      PageType = 10
	PageTypeLobFirst  PageType = 24
)

type PageFormat uint8

const (
	FormatRedundant PageFormat = 0
	FormatCompact   PageFormat = 1
)

type PageDirection uint16

const (
	DirLeft        PageDirection = 1
	DirRight       PageDirection = 2
	DirSameRec     PageDirection = 3
	DirSamePage    PageDirection = 4
	DirNoDirection PageDirection = 5
)

type RecordType uint8

const (
	RecConventional RecordType = 0
	RecNodePointer  RecordType = 1
	RecInfimum      RecordType = 2
	RecSupremum     RecordType = 3
)

var (
	LitInfimum  = []byte("infimum\x00")
	LitSupremum = []byte("supremum")
)

// Value is a decoded column value: a Go integer sized to the column
// (int8..int64 or uint8..uint64; uint16 for YEAR; uint64 for BIT and the row
// id), bool, string (CHAR/VARCHAR/TEXT, DATE-TIME family, DECIMAL), or []byte
// (BINARY/BLOB family).
type Value = interface{}

