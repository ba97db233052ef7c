// Package registry tracks the entity kinds the server persists. Each domain
// package registers its kinds at wiring time, and the schema endpoint is
// derived from the registrations so it can never drift from the code.
package registry

import (
	"net/http"
	"sort"
	"sync"

	"github.com/labstack/echo/v4"
)

// Registry is a concurrency-safe set of entity kind names.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]struct{}
}

func New() *Registry {
	return &Registry{kinds: make(map[string]struct{})}
}

// Register adds one or more entity kinds. Registering a kind twice is a
// no-op.
func (r *Registry) Register(kinds ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range kinds {
		if k == "" {
			continue
		}
		r.kinds[k] = struct{}{}
	}
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SchemaHandler serves the list of entity kinds the server knows about.
func (r *Registry) SchemaHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"collections": r.Kinds(),
	})
}
