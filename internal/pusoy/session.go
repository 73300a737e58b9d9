package pusoy

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/EtomicBomb/ethan-ws/internal/tenant"
)

// TurnTimeout is how long a human seat's turn may run before the
// runtime forces the first legal play on their behalf.
const TurnTimeout = 60 * time.Second

// Session is the in-progress (or just-finished) game: the dealt
// GameState plus the seating, which seats are bot-controlled, and
// turn-timeout bookkeeping.
type Session struct {
	host  tenant.PeerID
	seats []Member // empty Handle/ID (zero PeerID) for bot seats
	bots  []bool

	state         *GameState
	rng           *rand.Rand
	model         PassingModel
	turnStartedAt time.Time

	onGameOver func(seats []Member, winner int)
}

// SetOnGameOver installs a callback fired once, the moment the table
// reports a winner, with the full seating and the winning seat index.
// Used by the tenant to record a terminal stats event.
func (s *Session) SetOnGameOver(fn func(seats []Member, winner int)) {
	s.onGameOver = fn
}

// NewSession deals a fresh game for the given seats (some of which
// may be bot-controlled), sends each human seat their opening turn
// brief, and broadcasts the initial state.
func NewSession(seats []Member, bots []bool, rng *rand.Rand, model PassingModel) (*Session, error) {
	state, err := NewGameState(len(seats), rng)
	if err != nil {
		return nil, err
	}

	s := &Session{
		host:          seats[0].ID,
		seats:         seats,
		bots:          bots,
		state:         state,
		rng:           rng,
		model:         model,
		turnStartedAt: time.Now(),
	}
	s.sendTurnBriefs()
	s.broadcastState()
	return s, nil
}

func (s *Session) sendTurnBriefs() {
	for i, seat := range s.seats {
		if s.bots[i] {
			continue
		}
		notations := cardNotations(s.state.Hand(i))
		_ = seat.Handle.SendText(encodeTurnBrief(i, notations, s.state.CurrentPlayer()))
	}
}

func cardNotations(cards Cards) []string {
	slice := cards.Slice()
	out := make([]string, len(slice))
	for i, c := range slice {
		out[i] = c.Notation()
	}
	return out
}

func (s *Session) seatOf(id tenant.PeerID) (int, bool) {
	for i, seat := range s.seats {
		if !s.bots[i] && seat.ID == id {
			return i, true
		}
	}
	return 0, false
}

// ReceiveMessage handles one inbound JSON command from a seated
// player: {"kind":"play","cards":[...]} or {"kind":"pass"}.
func (s *Session) ReceiveMessage(id tenant.PeerID, raw []byte) error {
	seat, ok := s.seatOf(id)
	if !ok {
		return tenant.ErrDisconnect
	}

	var envelope inboundEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return tenant.ErrDisconnect
	}

	if seat != s.state.CurrentPlayer() {
		_ = s.seats[seat].Handle.SendText(encodeInvalidPlay(ErrNotYourTurn.Error()))
		return nil
	}

	var play Play
	switch envelope.Kind {
	case "pass":
		play = PassPlay()
	case "play":
		var cmd playCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return tenant.ErrDisconnect
		}
		p, err := s.buildPlay(cmd.Cards)
		if err != nil {
			_ = s.seats[seat].Handle.SendText(encodeInvalidPlay(err.Error()))
			return nil
		}
		play = p
	default:
		return tenant.ErrDisconnect
	}

	return s.applyPlay(play)
}

func (s *Session) buildPlay(notations []string) (Play, error) {
	var cards Cards
	for _, n := range notations {
		c, err := ParseCard(n)
		if err != nil {
			return Play{}, err
		}
		cards.Insert(c)
	}
	play, ok := NewFinder(cards).Infer()
	if !ok {
		return Play{}, ErrWrongLength
	}
	return play, nil
}

func (s *Session) applyPlay(play Play) error {
	if err := s.state.CanPlay(play); err != nil {
		seat := s.state.CurrentPlayer()
		_ = s.seats[seat].Handle.SendText(encodeInvalidPlay(err.Error()))
		return nil
	}

	s.state.Play(play)
	s.turnStartedAt = time.Now()
	s.broadcastState()

	if winner, over := s.state.Winner(); over {
		s.broadcastGameOver(winner)
	}
	return nil
}

func (s *Session) broadcastState() {
	var table []string
	kind := Pass.String()
	if prev, ok := s.state.CardsOnTable(); ok {
		table = cardNotations(prev.Cards())
		kind = prev.Kind().String()
	}
	msg := encodeStateUpdate(s.state.CurrentPlayer(), table, kind)
	for i, seat := range s.seats {
		if s.bots[i] {
			continue
		}
		_ = seat.Handle.SendText(msg)
	}
}

func (s *Session) broadcastGameOver(winner int) {
	msg := encodeGameOver(winner)
	for i, seat := range s.seats {
		if s.bots[i] {
			continue
		}
		_ = seat.Handle.SendText(msg)
	}
	if s.onGameOver != nil {
		s.onGameOver(s.seats, winner)
	}
}

// Leave handles a seated human disconnecting: if it was the host, the
// caller should destroy the session entirely; otherwise the seat is
// converted to a bot so the game can continue.
func (s *Session) Leave(id tenant.PeerID) (hostLeft bool) {
	seat, ok := s.seatOf(id)
	if !ok {
		return false
	}
	if id == s.host {
		return true
	}
	s.bots[seat] = true
	return false
}

// Periodic advances bot turns and enforces the turn timeout. Called
// once per tick from the tenant's OnTick.
func (s *Session) Periodic() {
	if _, over := s.state.Winner(); over {
		return
	}

	current := s.state.CurrentPlayer()
	if s.bots[current] {
		if time.Since(s.turnStartedAt) < BotTurnDelay*time.Second {
			return
		}
		hand := s.state.Hand(current)
		var play Play
		if s.model != nil {
			play = ChooseScoredPlay(s.state, hand, s.model)
		} else {
			play = ChooseRandomPlay(s.state, hand, s.rng)
		}
		_ = s.applyPlay(play)
		return
	}

	if time.Since(s.turnStartedAt) > TurnTimeout {
		forced := firstLegalPlay(s.state, s.state.Hand(current))
		_ = s.applyPlay(forced)
	}
}

func firstLegalPlay(state *GameState, hand Cards) Play {
	for _, p := range NewFinder(hand).AllPlays() {
		if state.CanPlay(p) == nil {
			return p
		}
	}
	return PassPlay()
}
