// Package storage is the per-browser-session key/value area that holds client
// state such as the bearer token. Values are strings, like browser storage.
package storage

import "context"

// Storage is a namespaced string key/value store owned by one workspace.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Factory builds the storage area for a workspace id.
type Factory func(workspaceID string) Storage
