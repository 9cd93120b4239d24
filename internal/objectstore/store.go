package objectstore

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("invalid object path")

// Store saves uploaded binary objects and returns a URL path where the
// object can be fetched afterwards.
type Store interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}
