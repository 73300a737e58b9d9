package quiz

import (
	"math/rand"

	"github.com/EtomicBomb/ethan-ws/internal/tenant"
)

// Game is one running quiz round: a host who drives "next question",
// a fixed roster of players who submit answers, and the accumulating
// per-player score.
type Game struct {
	host      tenant.PeerID
	players   []tenant.PeerID
	usernames map[tenant.PeerID]string
	handles   map[tenant.PeerID]*tenant.Handle

	bank    *Bank
	query   *Query
	rng     *rand.Rand
	current MultipleChoiceQuestion

	submitted map[tenant.PeerID]int
	scores    map[tenant.PeerID]float64
}

// NewGame deals the opening question and announces it to host and
// every player.
func NewGame(host tenant.PeerID, players []tenant.PeerID, usernames map[tenant.PeerID]string, handles map[tenant.PeerID]*tenant.Handle, bank *Bank, query *Query, rng *rand.Rand) *Game {
	g := &Game{
		host:      host,
		players:   players,
		usernames: usernames,
		handles:   handles,
		bank:      bank,
		query:     query,
		rng:       rng,
		submitted: make(map[tenant.PeerID]int),
		scores:    make(map[tenant.PeerID]float64),
	}
	g.current = query.Next(bank, rng)

	initial := encodeInitialStuff(g.current.Jsonify(bank))
	for _, p := range append(append([]tenant.PeerID{}, players...), host) {
		if h, ok := handles[p]; ok {
			_ = h.SendText(initial)
		}
	}
	return g
}

// HasPlayer reports whether id is either the host or a seated player.
func (g *Game) HasPlayer(id tenant.PeerID) bool {
	if id == g.host {
		return true
	}
	for _, p := range g.players {
		if p == id {
			return true
		}
	}
	return false
}

// SubmitAnswer records id's (non-host) answer to the current
// question; a later submission by the same id overwrites the earlier
// one.
func (g *Game) SubmitAnswer(id tenant.PeerID, answer int) {
	if id == g.host {
		return
	}
	g.submitted[id] = answer
}

// NextQuestion implements the host's "nextQuestion" command: scores
// every submitted answer against the question that's ending, deals a
// fresh one, and announces per-player correctness/score to players
// and the aggregate scoreboard to the host.
func (g *Game) NextQuestion() {
	for responder, answer := range g.submitted {
		if g.current.IsCorrect(answer) {
			g.scores[responder]++
		}
	}

	newQuestion := g.query.Next(g.bank, g.rng)
	newView := newQuestion.Jsonify(g.bank)

	previous := g.current

	for _, p := range g.players {
		answer, submitted := g.submitted[p]
		wasCorrect := submitted && previous.IsCorrect(answer)
		if h, ok := g.handles[p]; ok {
			_ = h.SendText(encodeUpdateStuffForPlayer(newView, wasCorrect, g.scores[p]))
		}
	}

	if h, ok := g.handles[g.host]; ok {
		_ = h.SendText(encodeUpdateStuffForHost(newView, g.jsonifyScores()))
	}

	g.current = newQuestion
	g.submitted = make(map[tenant.PeerID]int)
}

func (g *Game) jsonifyScores() []scoreEntry {
	out := make([]scoreEntry, len(g.players))
	for i, p := range g.players {
		out[i] = scoreEntry{Username: g.usernames[p], Score: g.scores[p]}
	}
	return out
}
