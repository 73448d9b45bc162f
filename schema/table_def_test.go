package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTable(t *testing.T) *TableDef {
	td := NewTableDef("t")
	assert.NoError(t, td.AddColumn(&Column{Name: "id", Type: TypeInt}))
	assert.NoError(t, td.AddColumn(&Column{Name: "name", Type: TypeVarchar, Length: 50, Nullable: true}))
	assert.NoError(t, td.AddColumn(&Column{Name: "bio", Type: TypeText, Nullable: true}))
	return td
}

func TestAddColumnTracksNullableAndVarLen(t *testing.T) {
	td := newTestTable(t)
	assert.Equal(t, 2, td.NullableColumnCount())
	assert.True(t, td.HasNullableColumn())
	assert.True(t, td.HasVariableLengthColumn())
	assert.Len(t, td.VariableLengthColumns(), 2)
}

func TestAddColumnDuplicateNameErrors(t *testing.T) {
	td := newTestTable(t)
	err := td.AddColumn(&Column{Name: "id", Type: TypeInt})
	assert.Error(t, err)
}

func TestSetPrimaryKeysMarksColumns(t *testing.T) {
	td := newTestTable(t)
	assert.NoError(t, td.SetPrimaryKeys([]string{"id"}))
	assert.True(t, td.HasPrimaryKey())
	col, _ := td.GetColumn("id")
	assert.True(t, col.IsPrimaryKey)
	assert.Equal(t, []*Column{col}, td.PrimaryKeyColumns())
}

func TestSetPrimaryKeysUnknownColumnErrors(t *testing.T) {
	td := newTestTable(t)
	err := td.SetPrimaryKeys([]string{"nope"})
	assert.Error(t, err)
}

func TestEnsureRowIDPrimaryKeyNoOpWhenPKExists(t *testing.T) {
	td := newTestTable(t)
	assert.NoError(t, td.SetPrimaryKeys([]string{"id"}))
	td.EnsureRowIDPrimaryKey()
	assert.Equal(t, []string{"id"}, td.PrimaryKeys)
}

func TestEnsureRowIDPrimaryKeySynthesizesHiddenColumn(t *testing.T) {
	td := newTestTable(t)
	td.EnsureRowIDPrimaryKey()
	assert.True(t, td.HasPrimaryKey())
	assert.Equal(t, []string{RowIDColumnName}, td.PrimaryKeys)
	col, ok := td.GetColumn(RowIDColumnName)
	assert.True(t, ok)
	assert.True(t, col.IsPrimaryKey)
	assert.Equal(t, TypeRowID, col.Type)
}

func TestNullBitmapSizeRoundsUpToWholeBytes(t *testing.T) {
	td := NewTableDef("t")
	for i := 0; i < 9; i++ {
		assert.NoError(t, td.AddColumn(&Column{Name: string(rune('a' + i)), Type: TypeInt, Nullable: true}))
	}
	assert.Equal(t, 2, td.NullBitmapSize())
}

func TestGetColumnByOrdinalOutOfRange(t *testing.T) {
	td := newTestTable(t)
	_, err := td.GetColumnByOrdinal(99)
	assert.Error(t, err)
}
