package pusoy

import (
	"errors"
	"math/rand"
	"sort"
)

// ErrWordListExhausted is returned when every word in the configured
// list has already been issued as a GameID; this is a fatal condition
// for the tenant (no more lobbies can be created).
var ErrWordListExhausted = errors.New("pusoy: game id word list exhausted")

// GameID is a printable token bijective with its index into a sorted
// word list, chosen by uniform sampling without replacement.
type GameID struct {
	wordIndex int
}

// WordList holds a sorted set of lowercase hyphenated words used to
// mint human-readable GameIDs. Loaded once at startup from a text
// file (one word per line); the runtime treats it as an external
// lookup table.
type WordList struct {
	words []string
}

// NewWordList builds a WordList from already-sorted words. The
// caller is responsible for sorting (and validating the character
// set) when loading from disk.
func NewWordList(sortedWords []string) *WordList {
	return &WordList{words: sortedWords}
}

// Lookup finds the GameID for a word, if it appears in the list.
func (wl *WordList) Lookup(word string) (GameID, bool) {
	i := sort.SearchStrings(wl.words, word)
	if i < len(wl.words) && wl.words[i] == word {
		return GameID{wordIndex: i}, true
	}
	return GameID{}, false
}

// Stringify renders a GameID back to its word.
func (wl *WordList) Stringify(id GameID) string {
	return wl.words[id.wordIndex]
}

// Len reports the word list's size.
func (wl *WordList) Len() int { return len(wl.words) }

// GameIDGenerator mints fresh GameIDs by rejection sampling over the
// set of indices not yet issued.
type GameIDGenerator struct {
	list        *WordList
	unavailable map[int]bool
}

// NewGameIDGenerator creates a generator over list.
func NewGameIDGenerator(list *WordList) *GameIDGenerator {
	return &GameIDGenerator{list: list, unavailable: make(map[int]bool)}
}

// Next mints a fresh GameID not yet issued by this generator. Returns
// ErrWordListExhausted (a fatal condition for the tenant) once every
// word has been issued.
func (g *GameIDGenerator) Next(rng *rand.Rand) (GameID, error) {
	if len(g.unavailable) >= g.list.Len() {
		return GameID{}, ErrWordListExhausted
	}
	for {
		idx := rng.Intn(g.list.Len())
		if !g.unavailable[idx] {
			g.unavailable[idx] = true
			return GameID{wordIndex: idx}, nil
		}
	}
}

// Release returns an issued GameID's index to the available pool,
// called when a lobby or game using it ends.
func (g *GameIDGenerator) Release(id GameID) {
	delete(g.unavailable, id.wordIndex)
}
