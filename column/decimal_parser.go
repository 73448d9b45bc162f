// decimal_parser.go - Parser for DECIMAL/NUMERIC column types
package column

import (
	"fmt"

	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/schema"
)

// DecimalParser handles DECIMAL/NUMERIC, stored as InnoDB's binary (mysql.my_decimal)
// format: 9-digit groups packed into 4-byte big-endian words, with a
// partial leading/trailing group sized by the digit count, and the same
// sign-bit XOR convention the int parsers use.
type DecimalParser struct {
	BaseParser
}

var decimalGroupBytes = [10]int{0, 1, 1, 2, 2, 3, 3, 4, 4, 4}

func (p *DecimalParser) Parse(input []byte, offset int, col *schema.Column, varLen int) (format.Value, int, error) {
	size := col.StorageSize()
	if offset+size > len(input) {
		return nil, 0, format.ErrShortRead
	}
	buf := make([]byte, size)
	copy(buf, input[offset:offset+size])

	negative := buf[0]&0x80 == 0
	buf[0] ^= 0x80
	if negative {
		for i := range buf {
			buf[i] = ^buf[i]
		}
	}

	integerDigits := col.Precision - col.Scale
	intWords, intLeftover := integerDigits/9, integerDigits%9
	fracWords, fracLeftover := col.Scale/9, col.Scale%9

	pos := 0
	var out []byte
	if negative {
		out = append(out, '-')
	}

	readGroup := func(digits int) (uint32, int) {
		nb := decimalGroupBytes[digits]
		var v uint32
		for i := 0; i < nb; i++ {
			v = (v << 8) | uint32(buf[pos+i])
		}
		pos += nb
		return v, nb
	}

	first := true
	if intLeftover > 0 {
		v, _ := readGroup(intLeftover)
		out = append(out, []byte(fmt.Sprintf("%d", v))...)
		first = false
	}
	for i := 0; i < intWords; i++ {
		v, _ := readGroup(9)
		if first {
			out = append(out, []byte(fmt.Sprintf("%d", v))...)
			first = false
		} else {
			out = append(out, []byte(fmt.Sprintf("%09d", v))...)
		}
	}
	if first {
		out = append(out, '0')
	}
	if col.Scale > 0 {
		out = append(out, '.')
		for i := 0; i < fracWords; i++ {
			v, _ := readGroup(9)
			out = append(out, []byte(fmt.Sprintf("%09d", v))...)
		}
		if fracLeftover > 0 {
			v, _ := readGroup(fracLeftover)
			width := fracLeftover
			out = append(out, []byte(fmt.Sprintf("%0*d", width, v))...)
		}
	}
	return string(out), size, nil
}

func (p *DecimalParser) Skip(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	return col.StorageSize(), nil
}
