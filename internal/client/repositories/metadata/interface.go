// Package metadata keeps small string settings of the CLI between runs,
// such as who logged in last and with which role.
package metadata

import "context"

type Repository interface {
	// Get returns the stored value, or "" when key was never set.
	Get(ctx context.Context, key string) (string, error)
	// Put upserts every pair of values.
	Put(ctx context.Context, values map[string]string) error
	// Forget removes keys; with no keys it removes everything.
	Forget(ctx context.Context, keys ...string) error
}
