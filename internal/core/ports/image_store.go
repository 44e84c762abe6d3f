package ports

import "context"

// ImageStore keeps order photos as opaque blobs addressed by id.
type ImageStore interface {
	// Get returns the blob and true, or nil and false when id is unknown.
	Get(ctx context.Context, id string) ([]byte, bool, error)

	// Put stores blob and returns its new id.
	Put(ctx context.Context, blob []byte, mime string) (string, error)

	// Delete removes id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// PurgeOlderThan deletes blobs stored more than days ago and returns how
	// many were removed.
	PurgeOlderThan(ctx context.Context, days int) (int, error)
}
