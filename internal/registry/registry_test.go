package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EtomicBomb/ethan-ws/internal/tenant"
	"github.com/EtomicBomb/ethan-ws/internal/wsproto"
)

type stubTenant struct{ ticks int }

func (s *stubTenant) OnConnect(tenant.PeerID, *tenant.Handle)       {}
func (s *stubTenant) OnMessage(tenant.PeerID, wsproto.Message) error { return nil }
func (s *stubTenant) OnDisconnect(tenant.PeerID)                    {}
func (s *stubTenant) OnTick()                                       { s.ticks++ }

func TestRegisterAndFind(t *testing.T) {
	r := New()
	stub := &stubTenant{}
	r.Register("/pusoy", stub)

	found, token, ok := r.Find("/pusoy")
	require.True(t, ok)
	require.Same(t, stub, found)
	require.NotNil(t, token)

	_, _, ok = r.Find("/missing")
	require.False(t, ok)
}

func TestFindReturnsTheSameTokenEveryTime(t *testing.T) {
	r := New()
	r.Register("/pusoy", &stubTenant{})

	_, first, ok := r.Find("/pusoy")
	require.True(t, ok)
	_, second, ok := r.Find("/pusoy")
	require.True(t, ok)
	require.Same(t, first, second)
}

func TestRegisterAfterCloseThenPanics(t *testing.T) {
	r := New()
	r.Close()
	require.Panics(t, func() { r.Register("/late", &stubTenant{}) })
}

func TestEachVisitsAllTenants(t *testing.T) {
	r := New()
	a, b := &stubTenant{}, &stubTenant{}
	r.Register("/a", a)
	r.Register("/b", b)

	r.Each(func(t tenant.Tenant, tok *tenant.Token) {
		tok.Lock()
		defer tok.Unlock()
		t.OnTick()
	})

	require.Equal(t, 1, a.ticks)
	require.Equal(t, 1, b.ticks)
}

func TestPeerIDGeneratorIsStrictlyIncreasing(t *testing.T) {
	g := NewPeerIDGenerator()
	first := g.Next()
	second := g.Next()
	require.Equal(t, tenant.PeerID(0), first)
	require.Equal(t, tenant.PeerID(1), second)
}
