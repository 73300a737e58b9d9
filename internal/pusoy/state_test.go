package pusoy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDealProducesDisjointHandsCoveringTheDeck(t *testing.T) {
	state, err := NewGameState(4, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	var union Cards
	for seat := 0; seat < 4; seat++ {
		hand := state.Hand(seat)
		require.True(t, hand.IsDisjoint(union))
		union = union.Union(hand)
	}
	require.Equal(t, FullDeck(), union)
}

func TestLeaderHoldsThreeOfClubs(t *testing.T) {
	state, err := NewGameState(4, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.True(t, state.Hand(state.CurrentPlayer()).Contains(ThreeOfClubs))
}

func TestInitialTurnMustContainThreeOfClubs(t *testing.T) {
	state, err := NewGameState(4, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	hand := state.Hand(state.CurrentPlayer())
	otherCard := firstCardNot(hand, ThreeOfClubs)
	bad := NewPlay(Single, otherCard, SingleCard(otherCard))
	require.ErrorIs(t, state.CanPlay(bad), ErrMustLeadWithThreeClubs)

	good := NewPlay(Single, ThreeOfClubs, SingleCard(ThreeOfClubs))
	require.NoError(t, state.CanPlay(good))
}

func firstCardNot(hand Cards, exclude Card) Card {
	for _, c := range hand.Slice() {
		if c != exclude {
			return c
		}
	}
	panic("hand has only the excluded card")
}

func TestLockedPlayMustMatchLengthAndBeatTable(t *testing.T) {
	state, err := NewGameState(4, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	lead := NewPlay(Single, ThreeOfClubs, SingleCard(ThreeOfClubs))
	require.NoError(t, state.CanPlay(lead))
	state.Play(lead)

	prev, ok := state.CardsOnTable()
	require.True(t, ok)
	require.Equal(t, Single, prev.Kind())

	nextHand := state.Hand(state.CurrentPlayer())
	if lowCard, found := lowerSingle(nextHand, ThreeOfClubs); found {
		bad := NewPlay(Single, lowCard, SingleCard(lowCard))
		require.ErrorIs(t, state.CanPlay(bad), ErrTooLow)
	}

	pair := NewFinder(nextHand).Pairs()
	if len(pair) > 0 {
		require.ErrorIs(t, state.CanPlay(pair[0]), ErrWrongLength)
	}
}

func lowerSingle(hand Cards, ceiling Card) (Card, bool) {
	for _, c := range hand.Slice() {
		if c.Less(ceiling) {
			return c, true
		}
	}
	return Card{}, false
}

func TestPassingModelDefaultsUnknownKeys(t *testing.T) {
	model := PassingModel{}
	a := NewPlay(Single, NewCard(Three, Clubs), SingleCard(NewCard(Three, Clubs)))
	b := NewPlay(Single, NewCard(Four, Clubs), SingleCard(NewCard(Four, Clubs)))
	require.Equal(t, DefaultExpectedPassCount, model.ExpectedPassCount(a, b))
}

func TestGameIDGeneratorRejectionSamplesWithoutReplacement(t *testing.T) {
	list := NewWordList([]string{"alpha", "bravo", "charlie"})
	gen := NewGameIDGenerator(list)
	rng := rand.New(rand.NewSource(1))

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		id, err := gen.Next(rng)
		require.NoError(t, err)
		word := list.Stringify(id)
		require.False(t, seen[word], "word issued twice")
		seen[word] = true
	}

	_, err := gen.Next(rng)
	require.ErrorIs(t, err, ErrWordListExhausted)
}
