// Package store provides the PageStore collaborator: loading a raw page
// buffer by page number from a quiescent tablespace file. Checksum
// verification, caching policy, and write paths are out of scope (spec.md §1).
package store

import (
	"context"
	"fmt"
	"io"

	"github.com/wilhasse/go-innodb/format"
	"go.uber.org/zap"
)

// PageStore loads page N as a 16 KiB buffer. Load must be idempotent.
type PageStore interface {
	Load(ctx context.Context, pageNo uint32) ([]byte, error)
}

// FileStore is the default PageStore, backed by an io.ReaderAt over a
// quiescent .ibd-style tablespace file.
type FileStore struct {
	r   io.ReaderAt
	log *zap.SugaredLogger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger attaches a logger; the default is a no-op logger so the library
// stays silent unless a caller opts in.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(fs *FileStore) { fs.log = log }
}

// NewFileStore wraps r (typically an *os.File opened read-only) as a PageStore.
func NewFileStore(r io.ReaderAt, opts ...Option) *FileStore {
	fs := &FileStore{r: r, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Load reads the 16 KiB page at the given page number.
func (fs *FileStore) Load(ctx context.Context, pageNo uint32) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := make([]byte, format.PageSize)
	off := int64(pageNo) * int64(format.PageSize)
	if _, err := fs.r.ReadAt(buf, off); err != nil {
		fs.log.Debugw("page read failed", "page", pageNo, "error", err)
		return nil, fmt.Errorf("read page %d: %w", pageNo, err)
	}
	return buf, nil
}
