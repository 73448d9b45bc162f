// main.go - command line front end over the query package: dump a raw page,
// resolve a point lookup, scan a bounded range, or walk an entire index.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/page"
	"github.com/wilhasse/go-innodb/query"
	"github.com/wilhasse/go-innodb/record"
	"github.com/wilhasse/go-innodb/schema"
	"github.com/wilhasse/go-innodb/store"
)

// Globals holds flags shared by every subcommand.
type Globals struct {
	File      string `required:"" help:"Path to the InnoDB tablespace (.ibd-style) file."`
	SQL       string `help:"Path to a CREATE TABLE SQL file describing the table's schema."`
	Verbose   bool   `short:"v" help:"Verbose logging."`
	StrictLOB bool   `name:"strict-lob" help:"Fail instead of returning NULL when a column's overflow chain uses the newer LOB_FIRST page format."`

	tableDef *schema.TableDef
	ps       store.PageStore
	log      *zap.SugaredLogger
}

var cli struct {
	Globals

	Page   PageCmd   `cmd:"" help:"Dump one raw page (FIL header, index header, optionally its records)."`
	Lookup LookupCmd `cmd:"" help:"Resolve a single primary-key value to its row."`
	Range  RangeCmd  `cmd:"" help:"Scan a bounded key range, in ascending order."`
	Scan   ScanCmd   `cmd:"" help:"Walk every row in the index, leaf by leaf."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("go-innodb"),
		kong.Description("Read-only InnoDB tablespace page and index inspector."),
	)

	if err := cli.Globals.setup(); err != nil {
		ctx.FatalIfErrorf(err)
	}
	defer cli.Globals.log.Sync() //nolint:errcheck

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

func (g *Globals) setup() error {
	logger, err := newLogger(g.Verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	g.log = logger.Sugar()

	f, err := os.Open(g.File)
	if err != nil {
		return fmt.Errorf("open %s: %w", g.File, err)
	}
	g.ps = store.NewFileStore(f, store.WithLogger(g.log))

	if g.SQL != "" {
		tableDef, err := schema.ParseTableDefFromSQLFile(g.SQL)
		if err != nil {
			return fmt.Errorf("parse schema: %w", err)
		}
		g.tableDef = tableDef
		if g.Verbose {
			fmt.Fprintf(os.Stderr, "loaded schema:\n%s", tableDef.String())
		}
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

func (g *Globals) parserOptions() record.Options {
	return record.Options{ThrowOnUnsupportedNewLOB: g.StrictLOB}
}

func (g *Globals) index(rootPageNo uint32) *query.Index {
	return query.NewIndex(g.ps, g.tableDef, rootPageNo, nil, g.parserOptions(), g.log)
}

// PageCmd dumps a single raw page.
type PageCmd struct {
	PageNo     uint32 `arg:"" help:"Page number to dump."`
	Records    bool   `help:"Show decoded records on the page."`
	MaxRecords int    `default:"100" help:"Maximum number of records to display."`
}

func (c *PageCmd) Run(g *Globals) error {
	ctx := context.Background()
	buf, err := g.ps.Load(ctx, c.PageNo)
	if err != nil {
		return err
	}
	inner, err := page.NewInnerPage(c.PageNo, buf)
	if err != nil {
		return err
	}

	fmt.Printf("=== Page %d ===\n", inner.PageNo)
	fmt.Printf("Page Type:   %s (%d)\n", pageTypeName(inner.FIL.PageType), inner.FIL.PageType)
	fmt.Printf("Space ID:    %d\n", inner.FIL.SpaceID)
	fmt.Printf("LSN:         %d\n", inner.FIL.LastModLSN)
	fmt.Printf("Prev Page:   %s\n", pageNoString(inner.FIL.Prev))
	fmt.Printf("Next Page:   %s\n", pageNoString(inner.FIL.Next))

	if inner.FIL.PageType != format.PageTypeIndex {
		return nil
	}

	ip, err := page.ParseIndexPage(inner)
	if err != nil {
		return fmt.Errorf("parse index page: %w", err)
	}

	fmt.Printf("\nIndex Header:\n")
	fmt.Printf("  User Records: %d\n", ip.Hdr.NumUserRecs)
	fmt.Printf("  Dir Slots:    %d\n", ip.Hdr.NumDirSlots)
	fmt.Printf("  Page Level:   %d (%s)\n", ip.Hdr.PageLevel, leafOrInternal(ip))
	fmt.Printf("  Index ID:     %d\n", ip.Hdr.IndexID)
	fmt.Printf("  Used:         %d / %d bytes\n", ip.UsedBytes(), format.PageSize)

	if !c.Records {
		return nil
	}

	fmt.Printf("\nRecords:\n")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if g.tableDef != nil {
		parser := record.NewCompactParser(g.tableDef, g.ps, g.parserOptions())
		rows, err := ip.WalkRecords(ctx, parser, c.MaxRecords)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		fmt.Fprintf(w, "  #\t")
		for _, col := range g.tableDef.Columns {
			fmt.Fprintf(w, "%s\t", col.Name)
		}
		fmt.Fprintln(w)
		for i, row := range rows {
			fmt.Fprintf(w, "  %d\t", i)
			for _, col := range g.tableDef.Columns {
				v, _ := row.GetValue(col.Name)
				if v == nil {
					fmt.Fprintf(w, "NULL\t")
				} else {
					fmt.Fprintf(w, "%v\t", v)
				}
			}
			fmt.Fprintln(w)
		}
		return nil
	}

	rows, err := ip.WalkRaw(c.MaxRecords, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	fmt.Fprintf(w, "  #\tHeap#\tType\tDeleted\tOwned\tNext\n")
	for i, row := range rows {
		fmt.Fprintf(w, "  %d\t%d\t%s\t%v\t%d\t%d\n",
			i, row.Header.HeapNumber, recordTypeName(row.Header.Type),
			row.Header.FlagsDeleted, row.Header.NumOwned, row.Header.NextRecOffset)
	}
	return nil
}

// LookupCmd resolves a single primary-key value.
type LookupCmd struct {
	RootPage uint32   `arg:"" help:"Root page number of the clustered index."`
	Key      []string `arg:"" help:"Primary key column values, in primary-key column order."`
}

func (c *LookupCmd) Run(g *Globals) error {
	if g.tableDef == nil {
		return fmt.Errorf("lookup requires --sql to describe the primary key columns")
	}
	key, err := parseKey(g.tableDef.PrimaryKeyColumns(), c.Key)
	if err != nil {
		return err
	}
	row, ok, err := g.index(c.RootPage).PointLookup(context.Background(), key)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("not found")
		return nil
	}
	printRow(g.tableDef, row)
	return nil
}

// RangeCmd scans a bounded key range.
type RangeCmd struct {
	RootPage uint32   `arg:"" help:"Root page number of the clustered index."`
	GT       []string `help:"Lower bound, exclusive."`
	GTE      []string `help:"Lower bound, inclusive."`
	LT       []string `help:"Upper bound, exclusive."`
	LTE      []string `help:"Upper bound, inclusive."`
	Max      int      `default:"1000" help:"Maximum rows to print."`
}

func (c *RangeCmd) Run(g *Globals) error {
	if g.tableDef == nil {
		return fmt.Errorf("range requires --sql to describe the primary key columns")
	}
	pkCols := g.tableDef.PrimaryKeyColumns()

	lower, err := bound(pkCols, c.GTE, c.GT, query.GTE, query.GT)
	if err != nil {
		return err
	}
	upper, err := bound(pkCols, c.LTE, c.LT, query.LTE, query.LT)
	if err != nil {
		return err
	}

	it, err := g.index(c.RootPage).Range(context.Background(), lower, upper)
	if err != nil {
		return err
	}
	count := 0
	for count < c.Max {
		row, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		printRow(g.tableDef, row)
		count++
	}
	return nil
}

func bound(pkCols []*schema.Column, inclusive, exclusive []string, incOp, excOp query.Operator) (query.Bound, error) {
	switch {
	case len(inclusive) > 0:
		key, err := parseKey(pkCols, inclusive)
		return query.Bound{Op: incOp, Key: key}, err
	case len(exclusive) > 0:
		key, err := parseKey(pkCols, exclusive)
		return query.Bound{Op: excOp, Key: key}, err
	default:
		return query.Bound{}, nil
	}
}

// ScanCmd walks the entire index.
type ScanCmd struct {
	RootPage uint32 `arg:"" help:"Root page number of the clustered index."`
}

func (c *ScanCmd) Run(g *Globals) error {
	if g.tableDef == nil {
		return fmt.Errorf("scan requires --sql to describe the table's columns")
	}
	rows, err := g.index(c.RootPage).TraverseAll(context.Background())
	if err != nil {
		return err
	}
	for _, row := range rows {
		printRow(g.tableDef, row)
	}
	fmt.Fprintf(os.Stderr, "%d rows\n", len(rows))
	return nil
}

func parseKey(cols []*schema.Column, raw []string) ([]interface{}, error) {
	if len(raw) != len(cols) {
		return nil, fmt.Errorf("%w: expected %d key value(s), got %d", format.ErrInvalidArgument, len(cols), len(raw))
	}
	key := make([]interface{}, len(raw))
	for i, s := range raw {
		key[i] = coerceKeyValue(cols[i], s)
	}
	return key, nil
}

// coerceKeyValue converts a command-line string into an int64 or uint64 for
// integer columns and a bool for boolean columns, and leaves any other value
// as a string. The parsers return integers of the column's own width (int32
// for INT, for example); compare.Lexicographic compares integers of the same
// signedness by value across widths.
func coerceKeyValue(col *schema.Column, s string) interface{} {
	switch col.Type {
	case schema.TypeTinyInt, schema.TypeSmallInt, schema.TypeMediumInt,
		schema.TypeInt, schema.TypeBigInt, schema.TypeYear, schema.TypeRowID:
		if col.Unsigned || col.Type == schema.TypeRowID {
			if v, err := strconv.ParseUint(s, 10, 64); err == nil {
				return v
			}
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	case schema.TypeBoolean, schema.TypeBool:
		if v, err := strconv.ParseBool(s); err == nil {
			return v
		}
	}
	return s
}

func printRow(tableDef *schema.TableDef, row *record.Row) {
	for _, col := range tableDef.Columns {
		v, _ := row.GetValue(col.Name)
		fmt.Printf("%s=%v ", col.Name, v)
	}
	fmt.Println()
}

func pageNoString(p *uint32) string {
	if p == nil {
		return "NULL"
	}
	return fmt.Sprintf("%d", *p)
}

func pageTypeName(t format.PageType) string {
	switch t {
	case format.PageTypeAllocated:
		return "ALLOCATED"
	case format.PageTypeIndex:
		return "INDEX"
	case format.PageTypeUndoLog:
		return "UNDO_LOG"
	case format.PageTypeSDI:
		return "SDI"
	case format.PageTypeBlob:
		return "BLOB"
	case format.PageTypeLobFirst:
		return "LOB_FIRST"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", t)
	}
}

func recordTypeName(t format.RecordType) string {
	switch t {
	case format.RecConventional:
		return "DATA"
	case format.RecNodePointer:
		return "NODE_PTR"
	case format.RecInfimum:
		return "INFIMUM"
	case format.RecSupremum:
		return "SUPREMUM"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", t)
	}
}

func leafOrInternal(p *page.IndexPage) string {
	if p.IsLeaf() {
		return "leaf"
	}
	return "internal"
}
