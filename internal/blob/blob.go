package blob

import (
	"context"
	"io"
)

// Object is a stored blob opened for reading.
type Object struct {
	Name   string
	Length int64
	Reader io.ReadCloser
}

// Store is the one-shot object store behind study images: bytes in, an
// opaque id out, bytes back by id. Blobs are never removed, so there is
// no delete.
type Store interface {
	Upload(ctx context.Context, name string, r io.Reader) (id string, err error)
	Download(ctx context.Context, id string) (*Object, error)
}
