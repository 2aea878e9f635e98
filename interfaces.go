package obfx

import "context"

// BlobStore is the contract for the two storage backends a request can
// target. The engine reads the whole payload before any transform and writes
// the whole payload back only in its final step, so the interface deals in
// complete byte slices rather than streams.
//
// Implementations:
//   - Object store: github.com/hengadev/obfx/providers/s3.Store
//   - Local filesystem: github.com/hengadev/obfx/providers/localfs.Store
type BlobStore interface {
	// Fetch returns the complete content of the location. A missing file
	// or key fails with ErrSourceNotFound.
	Fetch(ctx context.Context, loc Locator) ([]byte, error)

	// Store overwrites the location with data. contentType is advisory;
	// backends without content-type metadata ignore it. Failures wrap
	// ErrWriteFailure.
	Store(ctx context.Context, loc Locator, data []byte, contentType string) error
}
