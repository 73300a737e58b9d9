package quiz

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/EtomicBomb/ethan-ws/internal/tenant"
	"github.com/EtomicBomb/ethan-ws/internal/wsproto"
)

// Tenant is the quiz application: host-created lobbies scoped to a
// curriculum range, each promoted to a running Game once the host
// sends "start".
type Tenant struct {
	handles   map[tenant.PeerID]*tenant.Handle
	usernames map[tenant.PeerID]string
	inGame    map[tenant.PeerID]GameID

	lobbies map[GameID]*Lobby
	games   map[GameID]*Game

	idGen *GameIDGenerator
	bank  *Bank
	rng   *rand.Rand
	log   zerolog.Logger
}

// NewTenant builds a quiz tenant quizzing from bank.
func NewTenant(bank *Bank, log zerolog.Logger) *Tenant {
	return &Tenant{
		handles:   make(map[tenant.PeerID]*tenant.Handle),
		usernames: make(map[tenant.PeerID]string),
		inGame:    make(map[tenant.PeerID]GameID),
		lobbies:   make(map[GameID]*Lobby),
		games:     make(map[GameID]*Game),
		idGen:     &GameIDGenerator{},
		bank:      bank,
		rng:       rand.New(rand.NewSource(1)),
		log:       log,
	}
}

// OnConnect implements tenant.Tenant.
func (t *Tenant) OnConnect(id tenant.PeerID, handle *tenant.Handle) {
	t.handles[id] = handle
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
	case "start":
		return t.handleStart(id)
	case "nextQuestion":
		return t.handleNextQuestion(id)
	case "submitAnswer":
		return t.handleSubmitAnswer(id, msg.Payload)
	default:
		return tenant.ErrDisconnect
	}
}

func (t *Tenant) handleCreate(id tenant.PeerID, raw []byte) error {
	var cmd createCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return tenant.ErrDisconnect
	}
	t.usernames[id] = cmd.Username

	start, err := parseSection(cmd.Settings.StartSection)
	if err != nil {
		return t.sendCreateFailed(id, "Unable to interpret your chapter range")
	}
	end, err := parseSection(cmd.Settings.EndSection)
	if err != nil {
		return t.sendCreateFailed(id, "Unable to interpret your chapter range")
	}

	query, err := NewQuery(t.bank, start, end)
	if err != nil {
		return t.sendCreateFailed(id, "Fewer than four terms were found in that range")
	}

	gameID := t.idGen.Next()
	t.lobbies[gameID] = NewLobby(id, query)
	t.inGame[id] = gameID

	if h, ok := t.handles[id]; ok {
		_ = h.SendText(encodeCreateSuccess(cmd.Username, gameID))
	}
	return nil
}

func (t *Tenant) sendCreateFailed(id tenant.PeerID, message string) error {
	if h, ok := t.handles[id]; ok {
		_ = h.SendText(encodeCreateFailed(message))
	}
	return nil
}

func parseSection(s string) ([2]int, error) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return [2]int{}, errMalformedSection
	}
	chapter, err := strconv.Atoi(parts[0])
	if err != nil {
		return [2]int{}, err
	}
	section, err := strconv.Atoi(parts[1])
	if err != nil {
		return [2]int{}, err
	}
	return [2]int{chapter, section}, nil
}

var errMalformedSection = errMalformedSectionType{}

type errMalformedSectionType struct{}

func (errMalformedSectionType) Error() string { return "quiz: section must be formatted chapter.section" }

func (t *Tenant) handleJoin(id tenant.PeerID, raw []byte) error {
	var cmd joinCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return tenant.ErrDisconnect
	}
	t.usernames[id] = cmd.Username

	gameID := GameID(cmd.GameID)
	lobby, ok := t.lobbies[gameID]
	if !ok {
		if h, ok := t.handles[id]; ok {
			_ = h.SendText(encodeInvalidGameID())
		}
		return nil
	}

	lobby.Join(id)
	t.inGame[id] = gameID

	if h, ok := t.handles[id]; ok {
		_ = h.SendText(encodeJoinSuccess(t.usernames[lobby.Host]))
	}
	t.announceMembers(lobby)
	return nil
}

func (t *Tenant) announceMembers(lobby *Lobby) {
	usernames := make([]string, len(lobby.Peers))
	for i, p := range lobby.Peers {
		usernames[i] = t.usernames[p]
	}
	msg := encodeRefreshLobby(usernames)
	t.sendToLobby(lobby, msg)
}

func (t *Tenant) sendToLobby(lobby *Lobby, msg string) {
	if h, ok := t.handles[lobby.Host]; ok {
		_ = h.SendText(msg)
	}
	for _, p := range lobby.Peers {
		if h, ok := t.handles[p]; ok {
			_ = h.SendText(msg)
		}
	}
}

func (t *Tenant) handleStart(id tenant.PeerID) error {
	gameID, ok := t.inGame[id]
	if !ok {
		return tenant.ErrDisconnect
	}
	lobby, ok := t.lobbies[gameID]
	if !ok || lobby.Host != id {
		return tenant.ErrDisconnect
	}

	usernames := make([]string, len(lobby.Peers))
	for i, p := range lobby.Peers {
		usernames[i] = t.usernames[p]
	}
	t.sendToLobby(lobby, encodeStartingGame(t.usernames[lobby.Host], usernames))

	delete(t.lobbies, gameID)
	t.games[gameID] = NewGame(lobby.Host, lobby.Peers, t.usernames, t.handles, t.bank, lobby.Query, t.rng)
	return nil
}

func (t *Tenant) handleNextQuestion(id tenant.PeerID) error {
	gameID, ok := t.inGame[id]
	if !ok {
		return tenant.ErrDisconnect
	}
	game, ok := t.games[gameID]
	if !ok || game.host != id {
		return tenant.ErrDisconnect
	}
	game.NextQuestion()
	return nil
}

func (t *Tenant) handleSubmitAnswer(id tenant.PeerID, raw []byte) error {
	gameID, ok := t.inGame[id]
	if !ok {
		return tenant.ErrDisconnect
	}
	game, ok := t.games[gameID]
	if !ok {
		return tenant.ErrDisconnect
	}
	var cmd submitAnswerCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return tenant.ErrDisconnect
	}
	game.SubmitAnswer(id, cmd.Answer)
	return nil
}

// OnDisconnect implements tenant.Tenant.
func (t *Tenant) OnDisconnect(id tenant.PeerID) {
	delete(t.handles, id)
	delete(t.usernames, id)
	gameID, inGame := t.inGame[id]
	delete(t.inGame, id)
	if !inGame {
		return
	}

	if lobby, ok := t.lobbies[gameID]; ok {
		if lobby.Leave(id) {
			t.sendToLobby(lobby, encodeHostAbandoned())
			delete(t.lobbies, gameID)
		} else {
			t.announceMembers(lobby)
		}
		return
	}

	if _, ok := t.games[gameID]; ok {
		if id == t.games[gameID].host {
			delete(t.games, gameID)
		}
	}
}

// OnTick implements tenant.Tenant. The quiz is purely reactive
// (driven by the host's explicit "nextQuestion"); there is no
// periodic state to advance.
func (t *Tenant) OnTick() {}
