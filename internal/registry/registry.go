// Package registry implements the tenant registry (C6): a path to
// tenant map populated once at startup and read-only thereafter, plus
// the process-wide peer identifier generator.
package registry

import (
	"sync"
	"sync/atomic"

	"github.com/EtomicBomb/ethan-ws/internal/tenant"
)

// entry pairs a registered tenant with the exclusion token the
// runtime must hold before invoking any of its four callbacks.
type entry struct {
	tenant tenant.Tenant
	token  *tenant.Token
}

// Registry maps request paths to tenants. Registration is expected
// to happen once, at startup, before Find is ever called; Find itself
// takes no lock and is wait-free. Each registered tenant gets its own
// tenant.Token, created here and handed out by Find/Each so callers
// serialize that tenant's callbacks per §4.7/§5 — "no two callbacks
// of the same tenant are ever active simultaneously."
type Registry struct {
	mu      sync.RWMutex
	tenants map[string]entry
	closed  bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{tenants: make(map[string]entry)}
}

// Register binds path to t, minting a fresh exclusion token for it.
// Panics if called after Close, matching the "registration is closed
// after the server starts" invariant.
func (r *Registry) Register(path string, t tenant.Tenant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		panic("registry: Register called after the registry was closed")
	}
	r.tenants[path] = entry{tenant: t, token: tenant.NewToken()}
}

// Close freezes the registry; subsequent Register calls panic.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// Find looks up the tenant registered at path, if any, along with the
// exclusion token the caller must hold for the duration of any
// callback it invokes on that tenant.
func (r *Registry) Find(path string) (tenant.Tenant, *tenant.Token, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tenants[path]
	if !ok {
		return nil, nil, false
	}
	return e.tenant, e.token, true
}

// Each invokes fn on every registered tenant together with its
// exclusion token. Used by the periodic driver (C8) to fan out
// OnTick; fn is responsible for locking the token before calling into
// the tenant.
func (r *Registry) Each(fn func(tenant.Tenant, *tenant.Token)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.tenants {
		fn(e.tenant, e.token)
	}
}

// PeerIDGenerator produces strictly increasing tenant.PeerID values.
// One instance per server.
type PeerIDGenerator struct {
	next atomic.Uint64
}

// NewPeerIDGenerator creates a generator starting at 0.
func NewPeerIDGenerator() *PeerIDGenerator {
	return &PeerIDGenerator{}
}

// Next returns the next strictly increasing peer id.
func (g *PeerIDGenerator) Next() tenant.PeerID {
	return tenant.PeerID(g.next.Add(1) - 1)
}
