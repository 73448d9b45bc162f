package column

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilhasse/go-innodb/schema"
)

func TestBitParserPacksBigEndian(t *testing.T) {
	col := &schema.Column{Type: schema.TypeBit, Length: 12} // ceil(12/8) = 2 bytes
	buf := []byte{0x01, 0x2C}
	p := &BitParser{}
	v, n, err := p.Parse(buf, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint64(0x012C), v)
}

func TestBitParserShortReadErrors(t *testing.T) {
	col := &schema.Column{Type: schema.TypeBit, Length: 16}
	p := &BitParser{}
	_, _, err := p.Parse([]byte{1}, 0, col, 0)
	assert.Error(t, err)
}

func TestBitParserSkip(t *testing.T) {
	col := &schema.Column{Type: schema.TypeBit, Length: 20} // ceil(20/8) = 3
	p := &BitParser{}
	n, err := p.Skip(nil, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
}
