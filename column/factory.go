// factory.go - Factory for getting appropriate column parser
package column

import (
	"github.com/wilhasse/go-innodb/format"
	"github.com/wilhasse/go-innodb/schema"
)

var (
	intParser      = &IntParser{}
	stringParser   = &StringParser{}
	dateTimeParser = &DateTimeParser{}
	decimalParser  = &DecimalParser{}
	bitParser      = &BitParser{}
	rowIDParser    = &RowIDParser{}
)

// GetParser returns the appropriate parser for the column type
func GetParser(col *schema.Column) Parser {
	switch col.Type {
	// Integer types
	case schema.TypeTinyInt, schema.TypeSmallInt, schema.TypeMediumInt,
		schema.TypeInt, schema.TypeBigInt,
		schema.TypeBoolean, schema.TypeBool:
		return intParser

	// String types
	case schema.TypeChar, schema.TypeVarchar,
		schema.TypeText, schema.TypeTinyText, schema.TypeMediumText, schema.TypeLongText,
		schema.TypeBinary, schema.TypeVarBinary,
		schema.TypeBlob, schema.TypeTinyBlob, schema.TypeMediumBlob, schema.TypeLongBlob:
		return stringParser

	// Date/time types (YEAR is routed here too; DateTimeParser decodes it
	// to a uint16 year number, as IntParser does)
	case schema.TypeDate, schema.TypeTime, schema.TypeDateTime,
		schema.TypeTimestamp, schema.TypeYear:
		return dateTimeParser

	case schema.TypeDecimal, schema.TypeNumeric:
		return decimalParser

	case schema.TypeBit:
		return bitParser

	case schema.TypeRowID:
		return rowIDParser

	// TODO: Add parsers for FLOAT/DOUBLE, ENUM/SET, JSON.

	default:
		return nil
	}
}

// ParseColumn parses a column value using the appropriate parser
func ParseColumn(input []byte, offset int, col *schema.Column, varLen int) (format.Value, int, error) {
	parser := GetParser(col)
	if parser == nil {
		return nil, 0, schema.ErrUnsupportedType
	}
	return parser.Parse(input, offset, col, varLen)
}

// SkipColumn skips a column value without parsing
func SkipColumn(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	parser := GetParser(col)
	if parser == nil {
		return 0, schema.ErrUnsupportedType
	}
	return parser.Skip(input, offset, col, varLen)
}
