package record

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilhasse/go-innodb/format"
)

func TestNextRecordPosPositiveOffset(t *testing.T) {
	r := Row{PrimaryKeyPos: 100, Header: RecordHeader{NextRecOffset: 26}}
	assert.Equal(t, 126, r.NextRecordPos())
}

func TestNextRecordPosNegativeOffsetStaysInBounds(t *testing.T) {
	r := Row{PrimaryKeyPos: 200, Header: RecordHeader{NextRecOffset: -50}}
	assert.Equal(t, 150, r.NextRecordPos())
}

func TestNextRecordPosWrapsAroundPageBoundary(t *testing.T) {
	r := Row{PrimaryKeyPos: 10, Header: RecordHeader{NextRecOffset: -20}}
	assert.Equal(t, format.PageSize-10, r.NextRecordPos())
}

func TestIsSystem(t *testing.T) {
	assert.True(t, Row{Header: RecordHeader{Type: format.RecInfimum}}.IsSystem())
	assert.True(t, Row{Header: RecordHeader{Type: format.RecSupremum}}.IsSystem())
	assert.False(t, Row{Header: RecordHeader{Type: format.RecConventional}}.IsSystem())
}

func TestGetValue(t *testing.T) {
	r := Row{ValuesByName: map[string]format.Value{"id": int32(5)}}
	v, ok := r.GetValue("id")
	assert.True(t, ok)
	assert.Equal(t, int32(5), v)

	_, ok = r.GetValue("missing")
	assert.False(t, ok)
}
