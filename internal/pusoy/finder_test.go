package pusoy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func handOf(cards ...Card) Cards {
	var c Cards
	for _, card := range cards {
		c.Insert(card)
	}
	return c
}

func TestSinglesOneEntryPerCard(t *testing.T) {
	hand := handOf(NewCard(Three, Clubs), NewCard(Four, Spades))
	singles := NewFinder(hand).Singles()
	require.Len(t, singles, 2)
}

func TestPairsRequireMatchingRank(t *testing.T) {
	hand := handOf(NewCard(Jack, Clubs), NewCard(Jack, Spades), NewCard(Queen, Hearts))
	pairs := NewFinder(hand).Pairs()
	require.Len(t, pairs, 1)
	require.Equal(t, Pair, pairs[0].Kind())
}

func TestFlushesRequireFiveSameSuit(t *testing.T) {
	hand := handOf(
		NewCard(Three, Clubs), NewCard(Five, Clubs), NewCard(Seven, Clubs),
		NewCard(Nine, Clubs), NewCard(Jack, Clubs),
	)
	flushes := NewFinder(hand).Flushes()
	require.Len(t, flushes, 1)
	require.Equal(t, Flush, flushes[0].Kind())
}

func TestStraitsAreCyclic(t *testing.T) {
	// Queen, King, Ace, Two, Three — a wraparound strait.
	hand := handOf(
		NewCard(Queen, Clubs), NewCard(King, Spades), NewCard(Ace, Hearts),
		NewCard(Two, Diamonds), NewCard(Three, Clubs),
	)
	straits := NewFinder(hand).Straits()
	require.NotEmpty(t, straits, "cyclic wraparound straits must be generated")
}

func TestFourOfAKindUsesFifthCardAsTrash(t *testing.T) {
	hand := handOf(
		NewCard(Seven, Clubs), NewCard(Seven, Spades), NewCard(Seven, Hearts), NewCard(Seven, Diamonds),
		NewCard(Three, Clubs),
	)
	plays := NewFinder(hand).FourOfAKinds()
	require.Len(t, plays, 1)
	require.Equal(t, 5, plays[0].Cards().Len())
}

func TestFullHouseRequiresDisjointRanks(t *testing.T) {
	hand := handOf(
		NewCard(Seven, Clubs), NewCard(Seven, Spades), NewCard(Seven, Hearts),
		NewCard(Four, Clubs), NewCard(Four, Spades),
	)
	plays := NewFinder(hand).FullHouses()
	require.Len(t, plays, 1)
}

func TestInferFiveCardPrefersStraitFlushOverFlush(t *testing.T) {
	hand := handOf(
		NewCard(Three, Clubs), NewCard(Four, Clubs), NewCard(Five, Clubs),
		NewCard(Six, Clubs), NewCard(Seven, Clubs),
	)
	play, ok := NewFinder(hand).Infer()
	require.True(t, ok)
	require.Equal(t, StraitFlush, play.Kind())
}

func TestPlayOrderingByKindThenRankingCard(t *testing.T) {
	low := NewPlay(Single, NewCard(Three, Clubs), SingleCard(NewCard(Three, Clubs)))
	high := NewPlay(Single, NewCard(King, Clubs), SingleCard(NewCard(King, Clubs)))
	require.True(t, high.CanPlayOn(low))
	require.False(t, low.CanPlayOn(high))

	pair := NewPlay(Pair, NewCard(Four, Clubs), handOf(NewCard(Four, Clubs), NewCard(Four, Spades)))
	require.False(t, pair.CanPlayOn(low), "different lengths never beat each other")
}
