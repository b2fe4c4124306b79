package ports

import "context"

// KeyValueStore holds opaque blobs by key. Get on a missing key returns an
// error wrapping domain.ErrKeyNotFound; Delete of a missing key succeeds.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
