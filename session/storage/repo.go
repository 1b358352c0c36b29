// Package storage provides the simple durable and transient key-value
// stores the session manager persists through: get/set/delete by string key.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// Repo is string key-value storage. The session manager uses one Repo
// instance for durable credential storage and another for the transient,
// consume-once redirect stash; implementations decide durability.
type Repo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
