package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
)

// Uploader turns a raw image upload into a stored WebP object.
type Uploader struct {
	store Store
}

// NewUploader returns nil when store is nil; a nil Uploader refuses uploads
// with "image_storage_unavailable".
func NewUploader(store Store) *Uploader {
	if store == nil {
		return nil
	}
	return &Uploader{store: store}
}

// Upload stores the image under <kind>/<ownerID>/<uuid>.webp.
func (u *Uploader) Upload(ctx context.Context, kind, ownerID string, r io.Reader) (string, error) {
	if u == nil {
		return "", httperr.ErrBusiness("image_storage_unavailable")
	}

	body, err := Process(r)
	if err != nil {
		return "", httperr.Wrap("invalid_image", err)
	}

	key := fmt.Sprintf("%s/%s/%s.webp", kind, ownerID, uuid.NewString())
	return u.store.Put(ctx, key, body, "image/webp")
}
