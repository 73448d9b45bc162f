package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBe16(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03}
	v, err := Be16(b, 1)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0203), v)

	_, err = Be16(b, 2)
	assert.Error(t, err)

	_, err = Be16(b, -1)
	assert.Error(t, err)
}

func TestBe32(t *testing.T) {
	b := []byte{0x00, 0x00, 0x01, 0x00, 0xFF}
	v, err := Be32(b, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x00000100), v)

	_, err = Be32(b, 2)
	assert.Error(t, err)
}

func TestBe64(t *testing.T) {
	b := make([]byte, 8)
	b[7] = 0x2A
	v, err := Be64(b, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	_, err = Be64(b, 1)
	assert.Error(t, err)
}
