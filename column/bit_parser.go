// bit_parser.go - Parser for BIT column type
package column

import (
	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/schema"
)

// BitParser handles BIT(n), stored as ceil(n/8) big-endian bytes.
type BitParser struct {
	BaseParser
}

func (p *BitParser) Parse(input []byte, offset int, col *schema.Column, varLen int) (format.Value, int, error) {
	size := col.StorageSize()
	data, err := p.readBytes(input, offset, size)
	if err != nil {
		return nil, 0, err
	}
	var v uint64
	for _, b := range data {
		v = (v << 8) | uint64(b)
	}
	return v, size, nil
}

func (p *BitParser) Skip(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	return col.StorageSize(), nil
}
