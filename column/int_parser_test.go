package column

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilhasse/go-innodb/schema"
)

func TestIntParserSignedInt32(t *testing.T) {
	col := &schema.Column{Type: schema.TypeInt}
	buf := make([]byte, 4)
	// -1 stored as 0x80000000 ^ 0xFFFFFFFF = 0x7FFFFFFF
	buf[0], buf[1], buf[2], buf[3] = 0x7F, 0xFF, 0xFF, 0xFF

	p := &IntParser{}
	v, n, err := p.Parse(buf, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, int32(-1), v)
}

func TestIntParserUnsignedInt32(t *testing.T) {
	col := &schema.Column{Type: schema.TypeInt, Unsigned: true}
	buf := []byte{0x00, 0x00, 0x00, 0x2A}
	p := &IntParser{}
	v, n, err := p.Parse(buf, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, uint32(42), v)
}

func TestIntParserTinyIntBoolean(t *testing.T) {
	col := &schema.Column{Type: schema.TypeBoolean}
	p := &IntParser{}
	v, n, err := p.Parse([]byte{1}, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, true, v)

	v, _, err = p.Parse([]byte{0}, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestIntParserYear(t *testing.T) {
	col := &schema.Column{Type: schema.TypeYear}
	p := &IntParser{}

	v, n, err := p.Parse([]byte{0}, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint16(0), v)

	v, _, err = p.Parse([]byte{124}, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint16(2024), v)
}

func TestIntParserSkipMatchesParseWidth(t *testing.T) {
	cases := []schema.ColumnType{schema.TypeTinyInt, schema.TypeSmallInt, schema.TypeMediumInt, schema.TypeInt, schema.TypeBigInt}
	p := &IntParser{}
	for _, ct := range cases {
		col := &schema.Column{Type: ct}
		n, err := p.Skip(nil, 0, col, 0)
		assert.NoError(t, err)
		assert.Greater(t, n, 0)
	}
}
