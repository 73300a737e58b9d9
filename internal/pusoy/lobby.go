package pusoy

import "github.com/EtomicBomb/ethan-ws/internal/tenant"

// Member is one seated participant: their peer id, write handle, and
// chosen display name.
type Member struct {
	ID       tenant.PeerID
	Handle   *tenant.Handle
	Username string
}

// Lobby is the pre-deal macro-state: a host and the players who have
// joined, waiting for the host to begin the game.
type Lobby struct {
	GameID GameID
	Host   Member
	Players []Member
}

// NewLobby creates a lobby hosted by host and sends them the
// createSuccess confirmation.
func NewLobby(host Member, id GameID, idStr string) *Lobby {
	l := &Lobby{GameID: id, Host: host}
	_ = host.Handle.SendText(encodeCreateSuccess(host.Username, idStr))
	return l
}

// ContainsPlayer reports whether id is the host or an already-seated
// player.
func (l *Lobby) ContainsPlayer(id tenant.PeerID) bool {
	if l.Host.ID == id {
		return true
	}
	for _, p := range l.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Join seats a new player (unless they are already the host or a
// player), sends them joinSuccess, and broadcasts refreshLobby to
// everyone.
func (l *Lobby) Join(member Member, idStr string) {
	if l.ContainsPlayer(member.ID) {
		return
	}
	_ = member.Handle.SendText(encodeJoinSuccess(l.Host.Username, idStr))
	l.Players = append(l.Players, member)
	l.announcePlayers()
}

// Leave removes id from the lobby. Returns true if the host left (the
// caller must destroy the lobby in that case); broadcasts
// hostAbandoned to everyone else when that happens, or refreshLobby
// otherwise.
func (l *Lobby) Leave(id tenant.PeerID) (hostLeft bool) {
	if l.Host.ID == id {
		for _, p := range l.Players {
			_ = p.Handle.SendText(`{"kind":"hostAbandoned"}`)
		}
		return true
	}

	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			break
		}
	}
	l.announcePlayers()
	return false
}

func (l *Lobby) announcePlayers() {
	usernames := make([]string, len(l.Players))
	for i, p := range l.Players {
		usernames[i] = p.Username
	}
	msg := encodeRefreshLobby(usernames)
	for _, p := range l.Players {
		_ = p.Handle.SendText(msg)
	}
	_ = l.Host.Handle.SendText(msg)
}

// AnnounceBeginning notifies every member that the game is starting.
func (l *Lobby) AnnounceBeginning() {
	usernames := make([]string, len(l.Players))
	for i, p := range l.Players {
		usernames[i] = p.Username
	}
	msg := encodeBeginGame(l.Host.Username, usernames)
	_ = l.Host.Handle.SendText(msg)
	for _, p := range l.Players {
		_ = p.Handle.SendText(msg)
	}
}

// Seats returns the host followed by the joined players, in seating
// order, for dealing into a Session.
func (l *Lobby) Seats() []Member {
	return append([]Member{l.Host}, l.Players...)
}
