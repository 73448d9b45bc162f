package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVariableLength(t *testing.T) {
	assert.True(t, (&Column{Type: TypeVarchar}).IsVariableLength())
	assert.True(t, (&Column{Type: TypeBlob}).IsVariableLength())
	assert.False(t, (&Column{Type: TypeInt}).IsVariableLength())
	assert.False(t, (&Column{Type: TypeChar, Charset: "latin1"}).IsVariableLength())
	assert.True(t, (&Column{Type: TypeChar, Charset: "utf8mb4"}).IsVariableLength())
}

func TestStorageSizeFixedWidthTypes(t *testing.T) {
	assert.Equal(t, 1, (&Column{Type: TypeTinyInt}).StorageSize())
	assert.Equal(t, 4, (&Column{Type: TypeInt}).StorageSize())
	assert.Equal(t, 8, (&Column{Type: TypeBigInt}).StorageSize())
	assert.Equal(t, 6, (&Column{Type: TypeRowID}).StorageSize())
	assert.Equal(t, 0, (&Column{Type: TypeVarchar}).StorageSize())
}

func TestMaxBytesPerChar(t *testing.T) {
	assert.Equal(t, 1, (&Column{}).MaxBytesPerChar())
	assert.Equal(t, 3, (&Column{Charset: "utf8"}).MaxBytesPerChar())
	assert.Equal(t, 4, (&Column{Charset: "utf8mb4"}).MaxBytesPerChar())
}
