package column

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilhasse/go-innodb/schema"
)

func TestDateTimeParserDate(t *testing.T) {
	year, month, day := uint32(2024), uint32(3), uint32(15)
	raw := (year << 9) | (month << 5) | day
	stored := raw ^ 0x800000
	buf := []byte{byte(stored >> 16), byte(stored >> 8), byte(stored)}

	p := &DateTimeParser{}
	v, n, err := p.Parse(buf, 0, &schema.Column{Type: schema.TypeDate}, 0)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "2024-03-15", v)
}

func TestDateTimeParserZeroDate(t *testing.T) {
	stored := uint32(0) ^ 0x800000
	buf := []byte{byte(stored >> 16), byte(stored >> 8), byte(stored)}
	p := &DateTimeParser{}
	v, _, err := p.Parse(buf, 0, &schema.Column{Type: schema.TypeDate}, 0)
	assert.NoError(t, err)
	assert.Equal(t, "0000-00-00", v)
}

func TestDateTimeParserTimestamp(t *testing.T) {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, 1700000000) // 2023-11-14 22:13:20 UTC
	p := &DateTimeParser{}
	v, n, err := p.Parse(buf, 0, &schema.Column{Type: schema.TypeTimestamp}, 0)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "2023-11-14 22:13:20", v)
}

func TestDateTimeParserTimestampZero(t *testing.T) {
	p := &DateTimeParser{}
	v, _, err := p.Parse(make([]byte, 4), 0, &schema.Column{Type: schema.TypeTimestamp}, 0)
	assert.NoError(t, err)
	assert.Equal(t, "0000-00-00 00:00:00", v)
}

func TestDateTimeParserYear(t *testing.T) {
	p := &DateTimeParser{}
	v, _, err := p.Parse([]byte{50}, 0, &schema.Column{Type: schema.TypeYear}, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint16(1950), v)
}

func TestDateTimeParserSkipWidths(t *testing.T) {
	p := &DateTimeParser{}
	n, err := p.Skip(nil, 0, &schema.Column{Type: schema.TypeDate}, 0)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = p.Skip(nil, 0, &schema.Column{Type: schema.TypeTimestamp}, 0)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
}
