// Package tenant defines the four-callback contract every
// application registered with the runtime must implement, and the
// peer handle tenants use to push frames.
package tenant

import (
	"errors"
	"sync"

	"github.com/EtomicBomb/ethan-ws/internal/wsproto"
)

// PeerID is a process-wide, strictly increasing identifier. The
// counter starts at 0 in every process, so ids repeat across
// restarts.
type PeerID uint64

// ErrDisconnect is returned by OnMessage to signal that the runtime
// should release this peer: close the socket and invoke OnDisconnect.
var ErrDisconnect = errors.New("tenant: disconnect requested")

// Handle is the opaque write-only endpoint a tenant owns for one
// peer after OnConnect runs. It is backed by wsproto.Writer (C3).
type Handle struct {
	w *wsproto.Writer
}

// NewHandle wraps a wsproto.Writer as a peer Handle.
func NewHandle(w *wsproto.Writer) *Handle {
	return &Handle{w: w}
}

// SendText writes s as a single TEXT frame. A non-nil error is
// recoverable (typically a broken pipe); the caller decides whether
// to ignore it (fire-and-forget broadcast) or escalate to a drop.
func (h *Handle) SendText(s string) error {
	return h.w.WriteText(s)
}

// SendBytes writes b as a single BINARY frame.
func (h *Handle) SendBytes(b []byte) error {
	return h.w.WriteBytes(b)
}

// Token serializes the four callbacks of one tenant, matching the
// original's `Arc<Mutex<dyn GlobalState>>`. The runtime acquires a
// tenant's Token before every OnConnect/OnMessage/OnDisconnect/OnTick
// call and holds it for the call's duration, so a tenant's own state
// (plain maps, no further locking) never sees two callbacks active at
// once — the registry creates each Token, the server and the
// periodic driver lock it; tenants never need one directly.
type Token struct {
	mu sync.Mutex
}

// NewToken creates an unlocked Token.
func NewToken() *Token {
	return &Token{}
}

// Lock acquires the token, blocking until any in-flight callback for
// the same tenant returns.
func (t *Token) Lock() {
	t.mu.Lock()
}

// Unlock releases the token.
func (t *Token) Unlock() {
	t.mu.Unlock()
}

// Tenant is the runtime contract every registered application
// implements. All four methods are invoked by the runtime with the
// tenant's own exclusion token held; the runtime never calls two of
// a given tenant's methods concurrently.
type Tenant interface {
	// OnConnect stashes the handle for peer id; may send initial frames.
	OnConnect(id PeerID, handle *Handle)

	// OnMessage interprets one inbound message for peer id. Returning
	// ErrDisconnect causes the runtime to release the peer.
	OnMessage(id PeerID, msg wsproto.Message) error

	// OnDisconnect releases all resources referencing peer id.
	// Subsequent OnTick calls must not dereference them.
	OnDisconnect(id PeerID)

	// OnTick advances time-based state; may push frames to any
	// currently connected peer.
	OnTick()
}
