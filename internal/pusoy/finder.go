package pusoy

// Finder enumerates every legal play containable within a hand.
type Finder struct {
	cards      Cards
	rankBlocks [numRanks]Cards
}

// NewFinder precomputes the per-rank groupings used by every
// enumeration method below.
func NewFinder(cards Cards) Finder {
	f := Finder{cards: cards}
	for _, c := range cards.Slice() {
		f.rankBlocks[c.Rank()].Insert(c)
	}
	return f
}

// AllPlays returns every legal play the hand can make, across every
// kind, highest-value kinds first (an arbitrary but stable order).
func (f Finder) AllPlays() []Play {
	var out []Play
	out = append(out, f.StraitFlushes()...)
	out = append(out, f.FourOfAKinds()...)
	out = append(out, f.FullHouses()...)
	out = append(out, f.Flushes()...)
	out = append(out, f.Straits()...)
	out = append(out, f.Pairs()...)
	out = append(out, f.Singles()...)
	return out
}

// Singles returns one play per card in the hand.
func (f Finder) Singles() []Play {
	cards := f.cards.Slice()
	out := make([]Play, 0, len(cards))
	for _, c := range cards {
		out = append(out, NewPlay(Single, c, SingleCard(c)))
	}
	return out
}

// nOfAKinds returns every n-subset within a single rank block, for
// every rank, as raw card sets (not yet tagged with a PlayKind).
func (f Finder) nOfAKinds(n int) []Cards {
	var out []Cards
	for _, block := range f.rankBlocks {
		if block.Len() < n {
			continue
		}
		for _, combo := range combinations(block.Slice(), n) {
			var set Cards
			for _, c := range combo {
				set.Insert(c)
			}
			out = append(out, set)
		}
	}
	return out
}

// Pairs returns every legal Pair play.
func (f Finder) Pairs() []Play {
	sets := f.nOfAKinds(2)
	out := make([]Play, 0, len(sets))
	for _, set := range sets {
		max, _ := set.MaxCard()
		out = append(out, NewPlay(Pair, max, set))
	}
	return out
}

// Flushes returns every legal Flush play: every 5-subset within a
// single suit's cards.
func (f Finder) Flushes() []Play {
	var bySuit [4]Cards
	for _, c := range f.cards.Slice() {
		bySuit[c.Suit()].Insert(c)
	}

	var out []Play
	for _, block := range bySuit {
		if block.Len() < 5 {
			continue
		}
		for _, combo := range combinations(block.Slice(), 5) {
			var set Cards
			for _, c := range combo {
				set.Insert(c)
			}
			max, _ := set.MaxCard()
			out = append(out, NewPlay(Flush, max, set))
		}
	}
	return out
}

// FourOfAKinds returns every legal FourOfAKind play: every
// rank-quadruple, each paired with every other card in the hand not
// in that quadruple (the "trash" card that completes the five-card
// play).
func (f Finder) FourOfAKinds() []Play {
	var out []Play
	for _, quad := range f.nOfAKinds(4) {
		max, _ := quad.MaxCard()
		for _, c := range f.cards.Slice() {
			if quad.Contains(c) {
				continue
			}
			set := quad
			set.Insert(c)
			out = append(out, NewPlay(FourOfAKind, max, set))
		}
	}
	return out
}

// FullHouses returns every legal FullHouse play: every (triple, pair)
// with disjoint ranks.
func (f Finder) FullHouses() []Play {
	triples := f.nOfAKinds(3)
	pairs := f.nOfAKinds(2)

	var out []Play
	for _, triple := range triples {
		triRank := triple.Slice()[0].Rank()
		triMax, _ := triple.MaxCard()
		for _, pair := range pairs {
			if pair.Slice()[0].Rank() == triRank {
				continue
			}
			set := triple.Union(pair)
			out = append(out, NewPlay(FullHouse, triMax, set))
		}
	}
	return out
}

// Straits returns every legal Strait play: every choice of one card
// from each of five consecutive ranks, cyclic over the 13 ranks (so
// wraparound straits such as Q-K-A-2-3 are generated).
func (f Finder) Straits() []Play {
	var out []Play
	for start := 0; start < numRanks; start++ {
		var blocks [5][]Card
		ok := true
		for i := 0; i < 5; i++ {
			block := f.rankBlocks[(start+i)%numRanks].Slice()
			if len(block) == 0 {
				ok = false
				break
			}
			blocks[i] = block
		}
		if !ok {
			continue
		}
		for _, choice := range cartesianProduct(blocks[:]) {
			var set Cards
			for _, c := range choice {
				set.Insert(c)
			}
			max, _ := set.MaxCard()
			out = append(out, NewPlay(Strait, max, set))
		}
	}
	return out
}

// StraitFlushes returns every Strait whose five cards share a suit,
// retagged as StraitFlush.
func (f Finder) StraitFlushes() []Play {
	var out []Play
	for _, p := range f.Straits() {
		if p.Cards().AllSameSuit() {
			max, _ := p.Cards().MaxCard()
			out = append(out, NewPlay(StraitFlush, max, p.Cards()))
		}
	}
	return out
}

// Infer determines the unique play kind implied by the card count
// alone: 0 cards is a Pass, 1 a Single, 2 a Pair (only if both cards
// share a rank), 5 resolves to the highest-priority kind the cards
// satisfy (strait flush > four of a kind > full house > flush >
// strait). Any other count, or a 2/5-card set that matches no kind,
// returns false.
func (f Finder) Infer() (Play, bool) {
	switch f.cards.Len() {
	case 0:
		return PassPlay(), true
	case 1:
		c := f.cards.Slice()[0]
		return NewPlay(Single, c, f.cards), true
	case 2:
		if !f.cards.AllSameRank() {
			return Play{}, false
		}
		max, _ := f.cards.MaxCard()
		return NewPlay(Pair, max, f.cards), true
	case 5:
		return f.inferFiveCardKind()
	default:
		return Play{}, false
	}
}

func (f Finder) inferFiveCardKind() (Play, bool) {
	for _, candidates := range [][]Play{
		f.StraitFlushes(),
		f.FourOfAKinds(),
		f.FullHouses(),
		f.Flushes(),
		f.Straits(),
	} {
		if best, ok := maxByRankingCard(candidates); ok {
			return best, true
		}
	}
	return Play{}, false
}

func maxByRankingCard(plays []Play) (Play, bool) {
	if len(plays) == 0 {
		return Play{}, false
	}
	best := plays[0]
	for _, p := range plays[1:] {
		bc, _ := best.RankingCard()
		pc, _ := p.RankingCard()
		if bc.Less(pc) {
			best = p
		}
	}
	return best, true
}

// combinations returns every n-element subset of items, as a slice
// of slices, via the standard recursive combination algorithm.
func combinations(items []Card, n int) [][]Card {
	if n == 0 {
		return [][]Card{{}}
	}
	if len(items) < n {
		return nil
	}
	var out [][]Card
	for i := 0; i <= len(items)-n; i++ {
		for _, rest := range combinations(items[i+1:], n-1) {
			combo := append([]Card{items[i]}, rest...)
			out = append(out, combo)
		}
	}
	return out
}

// cartesianProduct returns every way to pick one element from each
// of the given slices, in order.
func cartesianProduct(blocks [][]Card) [][]Card {
	if len(blocks) == 0 {
		return [][]Card{{}}
	}
	var out [][]Card
	rest := cartesianProduct(blocks[1:])
	for _, c := range blocks[0] {
		for _, tail := range rest {
			combo := append([]Card{c}, tail...)
			out = append(out, combo)
		}
	}
	return out
}
