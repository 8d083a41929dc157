package blobs

import (
	"context"
	"errors"
	"io"
)

// Allowed upload size for a single image.
const MaxImageSize = 10 * 1024 * 1024

var (
	// ErrNotFound indicates the URL doesn't map to a stored object
	ErrNotFound = errors.New("stored image not found")

	// ErrInvalidURL indicates a URL outside this store's namespace
	ErrInvalidURL = errors.New("URL does not belong to this image store")

	// ErrUnsupportedType indicates a non-image upload
	ErrUnsupportedType = errors.New("unsupported image type")
)

// Service is the binary object store the file endpoints use: bytes in,
// opaque URL out, delete by URL. Post image URLs elsewhere in the system
// are plain strings supplied by clients; only these endpoints talk to the
// store directly.
type Service interface {
	// Upload stores the image bytes and returns its public URL.
	// The original filename is only used for its extension.
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)

	// Delete removes the object behind a URL previously returned by Upload.
	Delete(ctx context.Context, url string) error
}
