// Package fixture builds synthetic compact-format INDEX pages in memory, for
// tests that need realistic page bytes without a checked-in .ibd file.
package fixture

import (
	"encoding/binary"

	"github.com/wilhasse/go-innodb/format"
)

// Record describes one user record to place on a synthesized leaf or
// non-leaf page, in ascending key order.
type Record struct {
	// Leaf records.
	ID  int32
	Val int32

	// Non-leaf (node-pointer) records: ID is the separator key, Child is
	// the page number to descend into.
	Child uint32
}

// PageOpts configures a synthesized page's FIL/INDEX header fields.
type PageOpts struct {
	PageNo   uint32
	Prev     uint32 // 0 means "no previous page" (NULL)
	Next     uint32 // 0 means "no next page" (NULL)
	Leaf     bool
	IndexID  uint64
	PageType format.PageType // defaults to format.PageTypeIndex
}

const filNull uint32 = 0xFFFFFFFF

func putBe16(b []byte, off int, v uint16) { binary.BigEndian.PutUint16(b[off:off+2], v) }
func putBe32(b []byte, off int, v uint32) { binary.BigEndian.PutUint32(b[off:off+4], v) }
func putBe64(b []byte, off int, v uint64) { binary.BigEndian.PutUint64(b[off:off+8], v) }

// putSignedInt32 writes v using InnoDB's sign-bit-flipped integer encoding,
// the inverse of column.IntParser's readInt32.
func putSignedInt32(b []byte, off int, v int32) {
	putBe32(b, off, uint32(v)^0x80000000)
}

func putRecordHeader(b []byte, off int, minRec, deleted bool, numOwned uint8, heapNo uint16, rtype format.RecordType, next int16) {
	var flags byte
	if minRec {
		flags |= 0x1
	}
	if deleted {
		flags |= 0x2
	}
	b[off] = (flags << 4) | (numOwned & 0x0F)
	putBe16(b, off+1, (heapNo<<3)|uint16(rtype))
	putBe16(b, off+3, uint16(next))
}

// recordLen returns the on-page byte length (header + content) of one user
// record for a 2-column (id INT, val INT) leaf table, or a node-pointer
// record (id INT key + 4-byte child pointer) when leaf is false.
func recordLen(leaf bool) int {
	if leaf {
		return format.RecordHeaderSize + 4 + format.TrxRollPtrSize + 4
	}
	return format.RecordHeaderSize + 4 + 4
}

// LeafPage builds a single-level compact leaf INDEX page over two INT
// columns (id, val) with id as the sole primary key column. Records must
// already be in ascending id order.
func LeafPage(opts PageOpts, records []Record) []byte {
	return buildPage(opts, true, records)
}

// NonLeafPage builds a single-level compact non-leaf (node-pointer) INDEX
// page over one INT key column. Records must already be in ascending id
// order, each naming the child page responsible for keys >= its id (and, for
// the first record, also every key smaller than it — the "descend via curr"
// corner case records exist to exercise).
func NonLeafPage(opts PageOpts, records []Record) []byte {
	return buildPage(opts, false, records)
}

func buildPage(opts PageOpts, leaf bool, records []Record) []byte {
	buf := make([]byte, format.PageSize)

	pageType := opts.PageType
	if pageType == 0 {
		pageType = format.PageTypeIndex
	}

	// FIL header.
	prev, next := filNull, filNull
	if opts.Prev != 0 {
		prev = opts.Prev
	}
	if opts.Next != 0 {
		next = opts.Next
	}
	const lsn = uint64(100)
	putBe32(buf, 0, 0)       // checksum, unchecked by ParseFilHeader
	putBe32(buf, 4, opts.PageNo)
	putBe32(buf, 8, prev)
	putBe32(buf, 12, next)
	putBe64(buf, 16, lsn)
	putBe16(buf, 24, uint16(pageType))
	putBe64(buf, 26, 0)
	putBe32(buf, 34, 0)

	// FIL trailer: low 32 bits of LSN must match the header's.
	trailerOff := format.PageSize - format.FilTrailerSize
	putBe32(buf, trailerOff, 0)
	putBe32(buf, trailerOff+4, uint32(lsn&0xffffffff))

	// Infimum/supremum and user records.
	cur := format.PageDataOff
	infHdrPos := cur
	cur += format.RecordHeaderSize
	infContentPos := cur
	copy(buf[cur:cur+format.SystemRecordBytes], format.LitInfimum)
	cur += format.SystemRecordBytes

	supHdrPos := cur
	cur += format.RecordHeaderSize
	supContentPos := cur
	copy(buf[cur:cur+format.SystemRecordBytes], format.LitSupremum)
	cur += format.SystemRecordBytes

	contentPositions := make([]int, len(records))
	level := uint16(1)
	if leaf {
		level = 0
	}
	for i, rec := range records {
		hdrPos := cur
		cur += format.RecordHeaderSize
		contentPos := cur
		contentPositions[i] = contentPos

		putSignedInt32(buf, cur, rec.ID)
		cur += 4
		if leaf {
			// DB_TRX_ID/DB_ROLL_PTR: zero-filled, never decoded by value.
			cur += format.TrxRollPtrSize
			putSignedInt32(buf, cur, rec.Val)
			cur += 4
		} else {
			putBe32(buf, cur, rec.Child)
			cur += 4
		}

		rtype := format.RecConventional
		if !leaf {
			rtype = format.RecNodePointer
		}
		putRecordHeader(buf, hdrPos, false, false, 1, uint16(2+i), rtype, 0)
	}

	// Wire next-record offsets in ascending key order: infimum -> rec0 ->
	// rec1 -> ... -> supremum. Offsets are relative to content start.
	chain := append([]int{infContentPos}, contentPositions...)
	chain = append(chain, supContentPos)
	chainHdrPos := append([]int{infHdrPos}, headerPositions(contentPositions)...)
	chainHdrPos = append(chainHdrPos, supHdrPos)
	for i := 0; i < len(chain)-1; i++ {
		next := int16(chain[i+1] - chain[i])
		patchNextOffset(buf, chainHdrPos[i], next)
	}

	putRecordHeader(buf, infHdrPos, false, false, 1, 0, format.RecInfimum, int16(chain[1]-chain[0]))
	putRecordHeader(buf, supHdrPos, false, false, 1, 1, format.RecSupremum, 0)

	// Directory slots: one slot per record (infimum, every user record,
	// supremum), stored physically reversed at the page tail.
	dir := append([]int{infContentPos}, contentPositions...)
	dir = append(dir, supContentPos)
	n := len(dir)
	dirStart := trailerOff - n*format.PageDirSlotSize
	for i := 0; i < n; i++ {
		putBe16(buf, dirStart+i*2, uint16(dir[n-1-i]))
	}

	// INDEX header (36 bytes at FilHeaderSize).
	ih := format.FilHeaderSize
	putBe16(buf, ih+0, uint16(n))         // NumDirSlots
	putBe16(buf, ih+2, uint16(cur))       // HeapTop
	putBe16(buf, ih+4, 0x8000|uint16(2+len(records))) // compact flag | NumHeapRecs
	putBe16(buf, ih+6, 0)                 // FirstGarbageOff
	putBe16(buf, ih+8, 0)                 // GarbageSpace
	putBe16(buf, ih+10, 0)                // LastInsertPos
	putBe16(buf, ih+12, uint16(format.DirNoDirection))
	putBe16(buf, ih+14, 0)                // NumInsertsInDirection
	putBe16(buf, ih+16, uint16(len(records))) // NumUserRecs
	putBe64(buf, ih+18, 0)                // MaxTrxID
	putBe16(buf, ih+26, level)
	putBe64(buf, ih+28, opts.IndexID)

	// FSEG header: 20 zero bytes is a valid (if minimal) segment header.

	return buf
}

func headerPositions(contentPositions []int) []int {
	out := make([]int, len(contentPositions))
	for i, c := range contentPositions {
		out[i] = c - format.RecordHeaderSize
	}
	return out
}

func patchNextOffset(buf []byte, hdrPos int, next int16) {
	putBe16(buf, hdrPos+3, uint16(next))
}
