package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilhasse/go-innodb/compare"
	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/internal/fixture"
	"github.com/wilhasse/go-innodb/page"
	"github.com/wilhasse/go-innodb/record"
	"github.com/wilhasse/go-innodb/schema"
)

func leafTableDef(t *testing.T) *schema.TableDef {
	t.Helper()
	td := schema.NewTableDef("t")
	assert.NoError(t, td.AddColumn(&schema.Column{Name: "id", Type: schema.TypeInt}))
	assert.NoError(t, td.AddColumn(&schema.Column{Name: "val", Type: schema.TypeInt}))
	assert.NoError(t, td.SetPrimaryKeys([]string{"id"}))
	return td
}

func parsedLeaf(t *testing.T, records []fixture.Record) *page.IndexPage {
	t.Helper()
	buf := fixture.LeafPage(fixture.PageOpts{PageNo: 1, Leaf: true}, records)
	inner, err := page.NewInnerPage(1, buf)
	assert.NoError(t, err)
	ip, err := page.ParseIndexPage(inner)
	assert.NoError(t, err)
	return ip
}

func TestFindExactMatch(t *testing.T) {
	ip := parsedLeaf(t, []fixture.Record{{ID: 10, Val: 100}, {ID: 20, Val: 200}, {ID: 30, Val: 300}})
	parser := record.NewCompactParser(leafTableDef(t), nil, record.Options{})

	rec, ok, err := FindExact(context.Background(), ip, parser, []format.Value{int32(20)}, compare.Lexicographic)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(200), rec.ValuesByName["val"])
}

func TestFindExactMiss(t *testing.T) {
	ip := parsedLeaf(t, []fixture.Record{{ID: 10, Val: 100}, {ID: 30, Val: 300}})
	parser := record.NewCompactParser(leafTableDef(t), nil, record.Options{})

	_, ok, err := FindExact(context.Background(), ip, parser, []format.Value{int32(20)}, compare.Lexicographic)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFindFloorBelowSmallestKeyReturnsInfimum(t *testing.T) {
	ip := parsedLeaf(t, []fixture.Record{{ID: 10, Val: 100}})
	parser := record.NewCompactParser(leafTableDef(t), nil, record.Options{})

	floor, err := FindFloor(context.Background(), ip, parser, []format.Value{int32(1)}, compare.Lexicographic)
	assert.NoError(t, err)
	assert.Equal(t, format.RecInfimum, floor.Header.Type)
}

func TestFindFloorAboveLargestKeyReturnsLastRecord(t *testing.T) {
	ip := parsedLeaf(t, []fixture.Record{{ID: 10, Val: 100}, {ID: 20, Val: 200}})
	parser := record.NewCompactParser(leafTableDef(t), nil, record.Options{})

	floor, err := FindFloor(context.Background(), ip, parser, []format.Value{int32(999)}, compare.Lexicographic)
	assert.NoError(t, err)
	assert.Equal(t, []format.Value{int32(20)}, floor.Key)
}
