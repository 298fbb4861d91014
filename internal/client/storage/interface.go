// Package storage provides the device-local key-value store backing the
// client's persisted state (session token, pending invite). It is the
// Go counterpart of the mobile app's async key-value storage.
package storage

import "context"

// Repository is a small key-value contract over local storage.
// Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
