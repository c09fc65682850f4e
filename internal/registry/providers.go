package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/assetcheck/internal/check"
)

// Provider computes one named shared dataset. It may pull other keys through
// the supplied data source; the cache guarantees each key is computed at most
// once per run. A provider must be pure with respect to a single run.
type Provider func(ctx context.Context, data check.DataSource) (any, error)

// RegisterProvider registers the provider function for a data key.
// Re-registering a key overwrites, mirroring check registration.
func (r *Registry) RegisterProvider(key string, fn Provider) {
	if key == "" {
		panic("registry: provider registered with an empty data key")
	}
	if fn == nil {
		panic(fmt.Sprintf("registry: provider for data key %q is nil", key))
	}
	if _, exists := r.providers[key]; exists {
		slog.Debug("Replacing existing data provider.", "key", key)
	}
	r.providers[key] = fn
}

// Provider returns the registered provider for key, if any.
func (r *Registry) Provider(key string) (Provider, bool) {
	fn, ok := r.providers[key]
	return fn, ok
}
