package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("storage: not found")
	ErrInvalidKey = errors.New("storage: invalid slot key")
)

// Store is a small key-value slot store. Put replaces a slot's whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
