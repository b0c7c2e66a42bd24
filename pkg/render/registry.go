package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrRendererNotFound reports a lookup for a name nobody registered.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrNoRenderers reports a resolve against an empty registry.
	ErrNoRenderers = errors.New("render: no renderers registered")
)

// Registry keeps renderers in registration order. The first one registered
// is the last-resort choice of Resolve.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderer under its trimmed Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: register: renderer is nil")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: register: renderer has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("render: register %q: name already taken", name)
	}
	r.byName[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for wiring code that cannot continue without it.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered as name. Unknown names wrap
// ErrRendererNotFound.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getLocked(strings.TrimSpace(name))
}

// Resolve picks the renderer for a request. A non-empty name must be
// registered. An empty name selects fallback when it is registered and the
// first registered renderer otherwise.
func (r *Registry) Resolve(name, fallback string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name = strings.TrimSpace(name); name != "" {
		return r.getLocked(name)
	}
	if renderer, ok := r.byName[strings.TrimSpace(fallback)]; ok {
		return renderer, nil
	}
	if len(r.order) == 0 {
		return nil, ErrNoRenderers
	}
	return r.byName[r.order[0]], nil
}

// List returns the registered names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

func (r *Registry) getLocked(name string) (Renderer, error) {
	renderer, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}
