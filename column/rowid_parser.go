// rowid_parser.go - Parser for the hidden 6-byte DB_ROW_ID clustered key
// InnoDB synthesizes for tables without a declared primary key.
package column

import (
	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/schema"
)

// RowIDParser decodes the 6-byte unsigned big-endian row ID.
type RowIDParser struct {
	BaseParser
}

func (p *RowIDParser) Parse(input []byte, offset int, col *schema.Column, varLen int) (format.Value, int, error) {
	data, err := p.readBytes(input, offset, 6)
	if err != nil {
		return nil, 0, err
	}
	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}
	return v, 6, nil
}

func (p *RowIDParser) Skip(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	return 6, nil
}
