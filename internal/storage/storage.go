package storage

import (
	"context"
	"io"
)

// ArtifactStore persists uploaded binaries (payment proofs, equipment images)
// and hands back stable reference strings. Callers never inspect file bytes;
// they only store and forward the reference.
type ArtifactStore interface {
	// Save writes the upload and returns its reference.
	Save(ctx context.Context, filename string, reader io.Reader) (string, error)

	// Open returns the artifact's bytes for serving.
	Open(ctx context.Context, reference string) (io.ReadCloser, error)

	// Delete removes the artifact. Deleting an unknown reference is not an
	// error.
	Delete(ctx context.Context, reference string) error
}
