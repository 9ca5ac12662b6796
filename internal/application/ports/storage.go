package ports

import "context"

// ImageStore removes stored product images. Removal is best-effort; a
// missing file is not an error.
type ImageStore interface {
	Remove(ctx context.Context, path string) error
}
