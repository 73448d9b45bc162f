package page

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilhasse/go-innodb/format"
)

func blobPageBuf(t *testing.T, pageNo uint32, next uint32, chunk []byte) []byte {
	t.Helper()
	buf := rawPageWithLSN(t, pageNo, 1, format.PageTypeBlob, 0xFFFFFFFF, 0xFFFFFFFF)
	off := format.FilHeaderSize
	binary.BigEndian.PutUint32(buf[off:off+4], next)
	binary.BigEndian.PutUint32(buf[off+4:off+8], uint32(len(chunk)))
	copy(buf[off+8:off+8+len(chunk)], chunk)
	return buf
}

func TestParseBlobPageLastChunk(t *testing.T) {
	buf := blobPageBuf(t, 10, 0xFFFFFFFF, []byte("hello"))
	inner, err := NewInnerPage(10, buf)
	assert.NoError(t, err)
	blob, err := ParseBlobPage(inner)
	assert.NoError(t, err)
	assert.False(t, blob.HasNext)
	assert.Equal(t, []byte("hello"), blob.Chunk)
}

func TestParseBlobPageHasNext(t *testing.T) {
	buf := blobPageBuf(t, 10, 11, []byte("part1"))
	inner, err := NewInnerPage(10, buf)
	assert.NoError(t, err)
	blob, err := ParseBlobPage(inner)
	assert.NoError(t, err)
	assert.True(t, blob.HasNext)
	assert.Equal(t, uint32(11), blob.Next)
}

func TestParseBlobPageWrongTypeErrors(t *testing.T) {
	buf := rawPageWithLSN(t, 10, 1, format.PageTypeIndex, 0xFFFFFFFF, 0xFFFFFFFF)
	inner, err := NewInnerPage(10, buf)
	assert.NoError(t, err)
	_, err = ParseBlobPage(inner)
	assert.ErrorIs(t, err, format.ErrPageTypeMismatch)
}
