package quiz

import "github.com/EtomicBomb/ethan-ws/internal/tenant"

// GameID is a small integer, minted sequentially (never reused) each
// time a lobby is created.
type GameID uint32

// GameIDGenerator mints strictly increasing GameIDs.
type GameIDGenerator struct{ next uint32 }

// Next mints the next GameID.
func (g *GameIDGenerator) Next() GameID {
	g.next++
	return GameID(g.next)
}

// Lobby is a not-yet-started quiz: the host, the joined players, and
// the curriculum-scoped query the eventual Game will draw from.
type Lobby struct {
	Host  tenant.PeerID
	Peers []tenant.PeerID
	Query *Query
}

// NewLobby starts an empty lobby hosted by host, scoped to query.
func NewLobby(host tenant.PeerID, query *Query) *Lobby {
	return &Lobby{Host: host, Query: query}
}

// Join appends a new peer to the lobby, unless already present.
func (l *Lobby) Join(id tenant.PeerID) {
	for _, p := range l.Peers {
		if p == id {
			return
		}
	}
	l.Peers = append(l.Peers, id)
}

// Leave removes a peer from the lobby (no-op for the host, who ends
// the lobby entirely instead — see hostLeft).
func (l *Lobby) Leave(id tenant.PeerID) (hostLeft bool) {
	if id == l.Host {
		return true
	}
	for i, p := range l.Peers {
		if p == id {
			l.Peers = append(l.Peers[:i], l.Peers[i+1:]...)
			return false
		}
	}
	return false
}
