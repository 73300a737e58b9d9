package pusoy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardIndexIsRankMajor(t *testing.T) {
	require.Equal(t, uint8(0), NewCard(Three, Clubs).Index())
	require.Equal(t, uint8(3), NewCard(Three, Diamonds).Index())
	require.Equal(t, uint8(4), NewCard(Four, Clubs).Index())
	require.Equal(t, uint8(51), NewCard(Two, Diamonds).Index())
}

func TestCardsSetOperations(t *testing.T) {
	var c Cards
	c.Insert(NewCard(Three, Clubs))
	c.Insert(NewCard(Four, Spades))

	require.Equal(t, 2, c.Len())
	require.True(t, c.Contains(NewCard(Three, Clubs)))
	require.False(t, c.Contains(NewCard(Five, Clubs)))

	c.Remove(NewCard(Three, Clubs))
	require.Equal(t, 1, c.Len())
}

func TestFullDeckHas52Cards(t *testing.T) {
	require.Equal(t, 52, FullDeck().Len())
}

func TestAllSameSuit(t *testing.T) {
	var flush Cards
	flush.Insert(NewCard(Three, Clubs))
	flush.Insert(NewCard(Four, Clubs))
	flush.Insert(NewCard(Five, Clubs))
	require.True(t, flush.AllSameSuit())

	flush.Insert(NewCard(Six, Spades))
	require.False(t, flush.AllSameSuit())
}

func TestAllSameRank(t *testing.T) {
	var pair Cards
	pair.Insert(NewCard(Jack, Clubs))
	pair.Insert(NewCard(Jack, Spades))
	require.True(t, pair.AllSameRank())

	pair.Insert(NewCard(Queen, Clubs))
	require.False(t, pair.AllSameRank())
}

func TestMaxCard(t *testing.T) {
	var c Cards
	c.Insert(NewCard(Three, Clubs))
	c.Insert(NewCard(King, Hearts))
	max, ok := c.MaxCard()
	require.True(t, ok)
	require.Equal(t, NewCard(King, Hearts), max)
}
