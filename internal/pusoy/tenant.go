// Package pusoy's Tenant wires the lobby/session orchestration
// described above into the runtime's four-callback contract (C7),
// mirroring the outer dispatch table of spec.md §4.9.
package pusoy

import (
	"encoding/json"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/EtomicBomb/ethan-ws/internal/statslog"
	"github.com/EtomicBomb/ethan-ws/internal/tenant"
	"github.com/EtomicBomb/ethan-ws/internal/wsproto"
)

// gameOverEvent is the terminal stats record written to the append-
// only log when a session's table reports a winner.
type gameOverEvent struct {
	Winner  string   `json:"winner"`
	Players []string `json:"players"`
}

// SeatCount is the fixed number of seats a Session deals into;
// vacant seats (fewer humans than SeatCount joined, or a seat whose
// occupant disconnected mid-game) are filled by bots.
const SeatCount = 4

// Tenant is the card-game application: lobby creation/join by
// human-readable GameID, in-game turn orchestration, and bot
// fallback for vacant seats.
type Tenant struct {
	unregistered map[tenant.PeerID]*tenant.Handle
	inGame       map[tenant.PeerID]GameID
	lobbies      map[GameID]*Lobby
	sessions     map[GameID]*Session

	idGen    *GameIDGenerator
	wordList *WordList
	model    PassingModel
	rng      *rand.Rand
	log      zerolog.Logger
	stats    *statslog.Recorder
}

// NewTenant builds a card-game tenant over the given word list and
// (optional, may be nil) scored-bot passing model. stats may be nil,
// in which case terminal game events are not recorded.
func NewTenant(wordList *WordList, model PassingModel, log zerolog.Logger, stats *statslog.Recorder) *Tenant {
	return &Tenant{
		unregistered: make(map[tenant.PeerID]*tenant.Handle),
		inGame:       make(map[tenant.PeerID]GameID),
		lobbies:      make(map[GameID]*Lobby),
		sessions:     make(map[GameID]*Session),
		idGen:        NewGameIDGenerator(wordList),
		wordList:     wordList,
		model:        model,
		rng:          rand.New(rand.NewSource(1)),
		log:          log,
		stats:        stats,
	}
}

// OnConnect implements tenant.Tenant.
func (t *Tenant) OnConnect(id tenant.PeerID, handle *tenant.Handle) {
	t.unregistered[id] = handle
}

// OnMessage implements tenant.Tenant.
func (t *Tenant) OnMessage(id tenant.PeerID, msg wsproto.Message) error {
	var envelope inboundEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return tenant.ErrDisconnect
	}

	switch envelope.Kind {
	case "create":
		return t.handleCreate(id, msg.Payload)
	case "join":
		return t.handleJoin(id, msg.Payload)
	case "begin":
		return t.handleBegin(id)
	default:
		gameID, ok := t.inGame[id]
		if !ok {
			return tenant.ErrDisconnect
		}
		if session, ok := t.sessions[gameID]; ok {
			return session.ReceiveMessage(id, msg.Payload)
		}
		return tenant.ErrDisconnect
	}
}

func (t *Tenant) handleCreate(id tenant.PeerID, raw []byte) error {
	handle, ok := t.unregistered[id]
	if !ok {
		return tenant.ErrDisconnect
	}

	var cmd createCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return tenant.ErrDisconnect
	}

	gameID, err := t.idGen.Next(t.rng)
	if err != nil {
		t.log.Error().Err(err).Msg("pusoy: word list exhausted, cannot create a new lobby")
		return tenant.ErrDisconnect
	}

	host := Member{ID: id, Handle: handle, Username: cmd.Username}
	t.lobbies[gameID] = NewLobby(host, gameID, t.wordList.Stringify(gameID))
	delete(t.unregistered, id)
	t.inGame[id] = gameID
	return nil
}

func (t *Tenant) handleJoin(id tenant.PeerID, raw []byte) error {
	handle, ok := t.unregistered[id]
	if !ok {
		return tenant.ErrDisconnect
	}

	var cmd joinCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return tenant.ErrDisconnect
	}

	gameID, ok := t.wordList.Lookup(cmd.GameID)
	lobby, lobbyOK := t.lobbies[gameID]
	if !ok || !lobbyOK {
		_ = handle.SendText(encodeInvalidGameID())
		return nil
	}

	member := Member{ID: id, Handle: handle, Username: cmd.Username}
	lobby.Join(member, t.wordList.Stringify(gameID))
	delete(t.unregistered, id)
	t.inGame[id] = gameID
	return nil
}

func (t *Tenant) handleBegin(id tenant.PeerID) error {
	gameID, ok := t.inGame[id]
	if !ok {
		return tenant.ErrDisconnect
	}
	lobby, ok := t.lobbies[gameID]
	if !ok || lobby.Host.ID != id {
		return tenant.ErrDisconnect
	}

	delete(t.lobbies, gameID)
	lobby.AnnounceBeginning()

	seats, bots := t.fillSeats(lobby.Seats())
	session, err := NewSession(seats, bots, t.rng, t.model)
	if err != nil {
		t.log.Error().Err(err).Msg("pusoy: failed to deal session")
		return tenant.ErrDisconnect
	}
	if t.stats != nil {
		session.SetOnGameOver(t.recordGameOver)
	}
	t.sessions[gameID] = session
	return nil
}

func (t *Tenant) recordGameOver(seats []Member, winner int) {
	players := make([]string, len(seats))
	for i, seat := range seats {
		players[i] = seat.Username
	}
	winnerName := ""
	if winner >= 0 && winner < len(seats) {
		winnerName = seats[winner].Username
	}
	if err := t.stats.Record("pusoy_game_over", gameOverEvent{Winner: winnerName, Players: players}); err != nil {
		t.log.Error().Err(err).Msg("pusoy: failed to record stats event")
	}
}

func (t *Tenant) fillSeats(joined []Member) ([]Member, []bool) {
	seats := make([]Member, SeatCount)
	bots := make([]bool, SeatCount)
	for i := 0; i < SeatCount; i++ {
		if i < len(joined) {
			seats[i] = joined[i]
		} else {
			bots[i] = true
		}
	}
	return seats, bots
}

// OnDisconnect implements tenant.Tenant.
func (t *Tenant) OnDisconnect(id tenant.PeerID) {
	gameID, inGame := t.inGame[id]
	delete(t.inGame, id)
	delete(t.unregistered, id)
	if !inGame {
		return
	}

	if lobby, ok := t.lobbies[gameID]; ok {
		if hostLeft := lobby.Leave(id); hostLeft {
			delete(t.lobbies, gameID)
			t.idGen.Release(gameID)
		}
		return
	}

	if session, ok := t.sessions[gameID]; ok {
		if hostLeft := session.Leave(id); hostLeft {
			delete(t.sessions, gameID)
			t.idGen.Release(gameID)
		}
	}
}

// OnTick implements tenant.Tenant.
func (t *Tenant) OnTick() {
	for _, session := range t.sessions {
		session.Periodic()
	}
}
