// Package metadata is the client's durable key/value store, the terminal
// equivalent of the browser's localStorage. It backs the persisted session
// snapshot and cookies so a restart does not require a fresh login before
// the next session check completes.
package metadata

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
