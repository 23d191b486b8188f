package ports

import "context"

// ScratchStore is the key/value scratch storage supplied by the host. The
// autosaver reads and writes a single fixed key.
type ScratchStore interface {
	// Get returns domain.ErrSlotEmpty when the key holds nothing.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
