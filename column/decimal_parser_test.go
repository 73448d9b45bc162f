package column

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilhasse/go-innodb/schema"
)

func TestDecimalParserSmallPositive(t *testing.T) {
	// DECIMAL(4,2): 1 integer group (2 digits -> 1 byte), 1 fraction group
	// (2 digits -> 1 byte). Value 12.34 encodes as two raw bytes {12, 34},
	// each XORed with the sign bit in the first byte only.
	col := &schema.Column{Type: schema.TypeDecimal, Precision: 4, Scale: 2}
	buf := []byte{12 ^ 0x80, 34}
	p := &DecimalParser{}
	v, n, err := p.Parse(buf, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, col.StorageSize(), n)
	assert.Equal(t, "12.34", v)
}

func TestDecimalParserNegative(t *testing.T) {
	col := &schema.Column{Type: schema.TypeDecimal, Precision: 4, Scale: 2}
	// Negative values store the ones' complement of the positive encoding,
	// with the sign bit left clear.
	positive := []byte{12 ^ 0x80, 34}
	buf := []byte{^positive[0], ^positive[1]}
	p := &DecimalParser{}
	v, _, err := p.Parse(buf, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, "-12.34", v)
}

func TestDecimalParserSkipUsesStorageSize(t *testing.T) {
	col := &schema.Column{Type: schema.TypeDecimal, Precision: 10, Scale: 2}
	p := &DecimalParser{}
	n, err := p.Skip(nil, 0, col, 0)
	assert.NoError(t, err)
	assert.Equal(t, col.StorageSize(), n)
}
