package pusoy

import "math/rand"

// BotTurnDelay is the artificial pause before a bot's move, kept
// short enough that a game stays watchable.
const BotTurnDelay = 2 // seconds; applied by the tenant's tick scheduling.

// ChooseRandomPlay implements the primary, "simple acceptable" bot
// policy: uniform random among the legal plays available given the
// current table state. Returns PassPlay if no non-pass play is legal
// and a pass is itself legal; the caller is expected to have already
// confirmed at least one legal play exists.
func ChooseRandomPlay(state *GameState, hand Cards, rng *rand.Rand) Play {
	candidates := legalPlays(state, hand)
	if len(candidates) == 0 {
		return PassPlay()
	}
	return candidates[rng.Intn(len(candidates))]
}

// PassingModel is a precomputed table scoring how many rounds of
// passing a given play is expected to survive before it becomes
// playable again, keyed by (kind, ranking card) pairs. Unknown key
// pairs default to DefaultExpectedPassCount.
type PassingModel map[passingKey]float64

type passingKey struct {
	from, to playClass
}

type playClass struct {
	kind PlayKind
	card Card
}

// DefaultExpectedPassCount is the fallback score for a
// (from, to) pair absent from the model.
const DefaultExpectedPassCount = 3.0

func classify(p Play) playClass {
	card, _ := p.RankingCard()
	return playClass{kind: p.Kind(), card: card}
}

// ExpectedPassCount looks up how many passing rounds play2 is
// expected to survive given that play1 preceded it, per the model,
// defaulting to DefaultExpectedPassCount for unseen pairs.
func (m PassingModel) ExpectedPassCount(play1, play2 Play) float64 {
	key := passingKey{from: classify(play1), to: classify(play2)}
	if v, ok := m[key]; ok {
		return v
	}
	return DefaultExpectedPassCount
}

// ChooseScoredPlay implements the optional "stronger" bot policy: it
// greedily picks, among the legal plays (a pass included when a pass
// is legal), the one with the lowest expected-pass-count against the
// table's current play (or against a pass when the table is empty).
// This is a deliberate simplification of the original search: it
// scores one move at a time rather than optimizing a whole hand's
// sequence of plays.
func ChooseScoredPlay(state *GameState, hand Cards, model PassingModel) Play {
	candidates := legalPlays(state, hand)
	if len(candidates) == 0 {
		return PassPlay()
	}

	reference := PassPlay()
	if prev, ok := state.CardsOnTable(); ok {
		reference = prev
	}

	best := candidates[0]
	bestScore := model.ExpectedPassCount(reference, best)
	for _, p := range candidates[1:] {
		score := model.ExpectedPassCount(reference, p)
		if score < bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

// legalPlays enumerates every play in hand that CanPlay would accept
// right now, plus a pass when a pass is legal.
func legalPlays(state *GameState, hand Cards) []Play {
	var out []Play
	for _, p := range NewFinder(hand).AllPlays() {
		if state.CanPlay(p) == nil {
			out = append(out, p)
		}
	}
	if state.CanPlay(PassPlay()) == nil {
		out = append(out, PassPlay())
	}
	return out
}
