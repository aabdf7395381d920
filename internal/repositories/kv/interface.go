// Package kv is the persistent key-value backend underneath the storage
// manager: string keys mapped to raw string values.
package kv

import (
	"context"
)

// Repository stores raw string values under string keys.
//
// Get reports ok=false for a missing key rather than an error. Delete of a
// missing key succeeds. Replace swaps the entire contents atomically.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
	Replace(ctx context.Context, pairs map[string]string) error
}
