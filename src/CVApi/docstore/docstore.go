package docstore

import (
	"context"
	"errors"
)

// Document keys used by the service.
const (
	KeyProposals     = "cv:proposals"
	KeyAnnouncements = "cv:announcements"
)

// ErrNotFound is returned by Get when no document exists under the key.
var ErrNotFound = errors.New("docstore: document not found")

// Store is a key-value document store. Writes replace the whole document;
// readers never observe a partial write.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
