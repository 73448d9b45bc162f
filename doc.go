// Package goinnodb documents a read-only InnoDB tablespace reader. There is
// no code at the module root; each concern lives in its own package:
//
// Wire format and decode primitives:
//   - format: page/record layout constants, sentinel errors, big-endian readers
//
// Page structure:
//   - page: FIL header/trailer, INDEX page (header, directory, records), BLOB page
//
// Record decoding:
//   - record: compact-format record header, schema-driven CompactParser,
//     externally-stored (overflow) column assembly
//
// Table metadata:
//   - schema: TableDef/Column, CREATE TABLE SQL ingestion
//   - column: per-type ColumnParser implementations
//
// Page access:
//   - store: the PageStore collaborator interface and its file-backed default
//
// B+ tree navigation and querying:
//   - compare: KeyComparator and the default lexicographic ordering
//   - search: directory binary search + linear probe within one page
//   - tree: root-to-leaf descent, leftmost-leaf and sibling-chain walks
//   - query: the Index facade (PointLookup, TraverseAll, Range) applications use
//
// Basic usage:
//
//	f, _ := os.Open("table.ibd")
//	defer f.Close()
//	ps := store.NewFileStore(f)
//	tableDef, _ := schema.ParseTableDefFromSQLFile("table.sql")
//	idx := query.NewIndex(ps, tableDef, rootPageNo, nil, record.Options{}, nil)
//	row, ok, _ := idx.PointLookup(context.Background(), []interface{}{int64(42)})
package goinnodb
