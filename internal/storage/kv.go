package storage

import (
	"context"
	"errors"
)

var (
	ErrCorruptRecord = errors.New("storage: corrupt record")
	ErrClosed        = errors.New("storage: closed")
)

// KV is a flat store of named payloads. Put overwrites the whole payload.
// Delete removes every named entry as one unit.
type KV interface {
	Get(ctx context.Context, name string) (payload []byte, ok bool, err error)
	Put(ctx context.Context, name string, payload []byte) error
	Delete(ctx context.Context, names ...string) error
}
