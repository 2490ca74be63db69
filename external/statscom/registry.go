package statscom

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/statsfeed/internal/domain/event"
)

// Registry resolves a sport key to its adapter.
type Registry struct {
	adapters map[string]Adapter
	order    []string
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, adapter := range adapters {
		if adapter == nil {
			continue
		}
		key := normalizeSportKey(adapter.Key())
		if _, exists := r.adapters[key]; !exists {
			r.order = append(r.order, key)
		}
		r.adapters[key] = adapter
	}
	return r
}

func (r *Registry) Get(key string) (Adapter, error) {
	adapter, ok := r.adapters[normalizeSportKey(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", event.ErrUnsupportedSport, key)
	}
	return adapter, nil
}

// Sports lists the registered sports in registration order.
func (r *Registry) Sports() []event.Sport {
	out := make([]event.Sport, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, event.Sport{Key: key, League: r.adapters[key].League()})
	}
	return out
}

func normalizeSportKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
