package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// FileBackend persists a Document to a single text file. Saves write a
// temporary file next to the target, sync it and rename it into place, so an
// interrupted save leaves either the old or the new document on disk.
type FileBackend struct {
	path   string
	format Format
	perm   fs.FileMode
}

// FileOption configures a FileBackend.
type FileOption func(*FileBackend)

// WithFormat overrides the extension based format detection.
func WithFormat(format Format) FileOption {
	return func(b *FileBackend) {
		b.format = format
	}
}

// WithFileMode sets the permissions of the saved file. Defaults to 0o644.
func WithFileMode(perm fs.FileMode) FileOption {
	return func(b *FileBackend) {
		b.perm = perm
	}
}

// NewFileBackend constructs a backend for path.
func NewFileBackend(path string, opts ...FileOption) *FileBackend {
	b := &FileBackend{
		path:   path,
		format: FormatFor(path),
		perm:   0o644,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Location returns the file path.
func (b *FileBackend) Location() string {
	return b.path
}

// Format returns the document encoding in use.
func (b *FileBackend) Format() Format {
	return b.format
}

// Load reads and decodes the file. A missing or blank file reports ok=false.
func (b *FileBackend) Load(ctx context.Context) (Document, Meta, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, Meta{}, false, persistenceError("load", b.path, err)
	}
	if !b.format.valid() {
		return nil, Meta{}, false, persistenceError("load", b.path, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(b.format)))
	}
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, Meta{}, false, nil
	}
	if err != nil {
		return nil, Meta{}, false, persistenceError("load", b.path, err)
	}

	doc, dropped, err := b.format.decode(data)
	if err != nil {
		return nil, Meta{}, false, persistenceError("load", b.path, err)
	}
	if len(dropped) > 0 {
		sort.Strings(dropped)
		log.WithFields(logger.Fields{
			"at":      "state.FileBackend.Load",
			"path":    b.path,
			"dropped": dropped,
		}).Warn("ignoring_non_scalar_option_values")
	}
	if len(doc) == 0 && len(dropped) == 0 {
		return nil, Meta{}, false, nil
	}

	meta := Meta{}
	if info, err := os.Stat(b.path); err == nil {
		meta.UpdatedAt = info.ModTime()
	}
	return doc, meta, true, nil
}

// Save encodes doc and atomically replaces the file.
func (b *FileBackend) Save(ctx context.Context, doc Document, meta Meta) (Meta, error) {
	if err := ctx.Err(); err != nil {
		return Meta{}, persistenceError("save", b.path, err)
	}
	data, err := b.format.encode(doc)
	if err != nil {
		return Meta{}, persistenceError("save", b.path, err)
	}
	if err := writeFileAtomic(b.path, data, b.perm); err != nil {
		return Meta{}, persistenceError("save", b.path, err)
	}
	out := cloneMeta(meta)
	out.UpdatedAt = time.Now()
	return out, nil
}

func writeFileAtomic(path string, data []byte, perm fs.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
