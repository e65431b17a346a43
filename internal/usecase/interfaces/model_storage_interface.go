package interfaces

import (
	"context"
	"io"
)

// IModelStorage persists uploaded model files so a recorded print job can
// be matched back to the bytes that produced its estimate.
//
// Save returns an opaque storage key; callers treat it as a handle for
// Open/Delete and never interpret it.
type IModelStorage interface {
	Save(ctx context.Context, originalName string, contents io.Reader) (string, error)
	Open(key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
