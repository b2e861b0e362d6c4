// Package cache memoizes calculation results. Calculators are pure, so a
// cached value is always interchangeable with a fresh computation.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

const keyPrefix = "finadvisor"

// Cache stores opaque encoded results under string keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key builds a namespaced key from the canonical string form of an input.
func Key(namespace string, parts ...string) string {
	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.WriteString(p)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%s:%016x", keyPrefix, namespace, h.Sum64())
}
