package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/wilhasse/go-innodb/format"
)

func TestFileStoreLoadReadsCorrectOffset(t *testing.T) {
	data := make([]byte, format.PageSize*3)
	copy(data[format.PageSize:], bytes.Repeat([]byte{0xAB}, format.PageSize))

	fs := NewFileStore(bytes.NewReader(data))
	buf, err := fs.Load(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, buf, format.PageSize)
	assert.Equal(t, byte(0xAB), buf[0])
	assert.Equal(t, byte(0xAB), buf[format.PageSize-1])
}

func TestFileStoreLoadShortReadErrors(t *testing.T) {
	fs := NewFileStore(bytes.NewReader(make([]byte, 10)))
	_, err := fs.Load(context.Background(), 0)
	assert.Error(t, err)
}

func TestFileStoreLoadRespectsCancelledContext(t *testing.T) {
	fs := NewFileStore(bytes.NewReader(make([]byte, format.PageSize)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fs.Load(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithLoggerOverridesDefaultNopLogger(t *testing.T) {
	logger := zap.NewExample().Sugar()
	fs := NewFileStore(bytes.NewReader(make([]byte, format.PageSize)), WithLogger(logger))
	assert.Same(t, logger, fs.log)
	_, err := fs.Load(context.Background(), 0)
	assert.NoError(t, err)
}
