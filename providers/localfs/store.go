// Package localfs provides the local-filesystem backend for obfx,
// implementing obfx.BlobStore over an afero filesystem so tests can run
// against an in-memory fs.
package localfs

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/hengadev/obfx"
)

// Store implements obfx.BlobStore on a filesystem.
type Store struct {
	fs afero.Fs
}

// New returns a store over the OS filesystem.
func New() *Store {
	return &Store{fs: afero.NewOsFs()}
}

// NewWithFs returns a store over the given filesystem (in-memory in tests).
func NewWithFs(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// Fetch reads the complete file. Missing files and permission errors
// surface as ErrSourceNotFound.
func (s *Store) Fetch(ctx context.Context, loc obfx.Locator) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, loc.Raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", obfx.ErrSourceNotFound, loc.Raw, err)
	}
	return data, nil
}

// Store overwrites the file with data. contentType is ignored: the
// filesystem has no content-type metadata.
func (s *Store) Store(ctx context.Context, loc obfx.Locator, data []byte, contentType string) error {
	if err := afero.WriteFile(s.fs, loc.Raw, data, os.FileMode(0o644)); err != nil {
		return fmt.Errorf("%w: %s: %v", obfx.ErrWriteFailure, loc.Raw, err)
	}
	return nil
}
