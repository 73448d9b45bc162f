package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/internal/fixture"
	"github.com/wilhasse/go-innodb/record"
	"github.com/wilhasse/go-innodb/schema"
)

type mapStore struct {
	pages map[uint32][]byte
}

func (s *mapStore) Load(ctx context.Context, pageNo uint32) ([]byte, error) {
	buf, ok := s.pages[pageNo]
	if !ok {
		return nil, fmt.Errorf("no such page %d", pageNo)
	}
	return buf, nil
}

// buildTestIndex builds a 2-level tree: root (page 1, non-leaf) -> leaf page
// 2 (ids 1,10,20) -> leaf page 3 (ids 21,30).
func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	td := schema.NewTableDef("t")
	assert.NoError(t, td.AddColumn(&schema.Column{Name: "id", Type: schema.TypeInt}))
	assert.NoError(t, td.AddColumn(&schema.Column{Name: "val", Type: schema.TypeInt}))
	assert.NoError(t, td.SetPrimaryKeys([]string{"id"}))

	root := fixture.NonLeafPage(fixture.PageOpts{PageNo: 1, IndexID: 1}, []fixture.Record{
		{ID: 1, Child: 2},
		{ID: 21, Child: 3},
	})
	leaf2 := fixture.LeafPage(fixture.PageOpts{PageNo: 2, Next: 3, IndexID: 1}, []fixture.Record{
		{ID: 1, Val: 100},
		{ID: 10, Val: 1000},
		{ID: 20, Val: 2000},
	})
	leaf3 := fixture.LeafPage(fixture.PageOpts{PageNo: 3, Prev: 2, IndexID: 1}, []fixture.Record{
		{ID: 21, Val: 2100},
		{ID: 30, Val: 3000},
	})

	store := &mapStore{pages: map[uint32][]byte{1: root, 2: leaf2, 3: leaf3}}
	return NewIndex(store, td, 1, nil, record.Options{}, nil)
}

func TestIndexPointLookup(t *testing.T) {
	ix := buildTestIndex(t)
	rec, ok, err := ix.PointLookup(context.Background(), []interface{}{int32(10)})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(1000), rec.ValuesByName["val"])
}

func TestIndexTraverseAll(t *testing.T) {
	ix := buildTestIndex(t)
	rows, err := ix.TraverseAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestIndexRangeBothBoundsInclusive(t *testing.T) {
	ix := buildTestIndex(t)
	it, err := ix.Range(context.Background(), Bound{Op: GTE, Key: []interface{}{int32(10)}}, Bound{Op: LTE, Key: []interface{}{int32(21)}})
	assert.NoError(t, err)

	var got []int32
	for {
		rec, ok, err := it.Next()
		assert.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, rec.Key[0].(int32))
	}
	assert.Equal(t, []int32{10, 20, 21}, got)
	assert.NoError(t, it.Close())
}

func TestIndexRangeUnboundedIsFullScan(t *testing.T) {
	ix := buildTestIndex(t)
	it, err := ix.Range(context.Background(), Bound{}, Bound{})
	assert.NoError(t, err)

	count := 0
	for {
		_, ok, err := it.Next()
		assert.NoError(t, err)
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 5, count)
}

func TestIndexRangeExclusiveBounds(t *testing.T) {
	ix := buildTestIndex(t)
	it, err := ix.Range(context.Background(), Bound{Op: GT, Key: []interface{}{int32(1)}}, Bound{Op: LT, Key: []interface{}{int32(21)}})
	assert.NoError(t, err)

	var got []int32
	for {
		rec, ok, err := it.Next()
		assert.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, rec.Key[0].(int32))
	}
	assert.Equal(t, []int32{10, 20}, got)
}

func TestIndexPointLookupWrongArityErrors(t *testing.T) {
	ix := buildTestIndex(t)
	_, _, err := ix.PointLookup(context.Background(), []interface{}{int32(10), int32(1)})
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestIndexPointLookupNilElementErrors(t *testing.T) {
	ix := buildTestIndex(t)
	_, _, err := ix.PointLookup(context.Background(), []interface{}{nil})
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestIndexRangeInvertedBoundsErrors(t *testing.T) {
	ix := buildTestIndex(t)
	_, err := ix.Range(context.Background(), Bound{Op: GTE, Key: []interface{}{int32(21)}}, Bound{Op: LTE, Key: []interface{}{int32(1)}})
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestIndexRangeNopWithNonEmptyKeyErrors(t *testing.T) {
	ix := buildTestIndex(t)
	_, err := ix.Range(context.Background(), Bound{Op: NOP, Key: []interface{}{int32(1)}}, Bound{})
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestIndexRangeNonNopWithEmptyKeyErrors(t *testing.T) {
	ix := buildTestIndex(t)
	_, err := ix.Range(context.Background(), Bound{Op: GTE}, Bound{})
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestIndexRangeWrongArityKeyErrors(t *testing.T) {
	ix := buildTestIndex(t)
	_, err := ix.Range(context.Background(), Bound{Op: GTE, Key: []interface{}{int32(1), int32(2)}}, Bound{})
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}
