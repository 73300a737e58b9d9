package quiz

import (
	"math/rand"
	"testing"
)

func testBank() *Bank {
	terms := map[TermID]Term{
		1: {Chapter: 1, Section: 1, Term: "tariff", Definition: "a tax on imports"},
		2: {Chapter: 1, Section: 1, Term: "embargo", Definition: "a ban on trade"},
		3: {Chapter: 1, Section: 2, Term: "coup", Definition: "a sudden seizure of power"},
		4: {Chapter: 1, Section: 2, Term: "treaty", Definition: "a formal agreement"},
		5: {Chapter: 2, Section: 1, Term: "famine", Definition: "a severe shortage of food"},
	}
	return NewBank(terms)
}

func TestNewQueryRejectsNarrowRange(t *testing.T) {
	bank := testBank()
	_, err := NewQuery(bank, [2]int{2, 1}, [2]int{2, 1})
	if err != ErrRangeTooNarrow {
		t.Fatalf("expected ErrRangeTooNarrow, got %v", err)
	}
}

func TestQueryNextProducesFourDistinctOptions(t *testing.T) {
	bank := testBank()
	query, err := NewQuery(bank, [2]int{1, 1}, [2]int{2, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng := rand.New(rand.NewSource(5))

	q := query.Next(bank, rng)
	view := q.Jsonify(bank)
	if len(view.Terms) != 4 {
		t.Fatalf("expected 4 options, got %d", len(view.Terms))
	}
	seen := make(map[string]bool)
	for _, term := range view.Terms {
		if seen[term] {
			t.Fatalf("expected distinct options, saw %q twice", term)
		}
		seen[term] = true
	}
}

func TestQueryNextMatchesCorrectIndex(t *testing.T) {
	bank := testBank()
	query, err := NewQuery(bank, [2]int{1, 1}, [2]int{2, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng := rand.New(rand.NewSource(9))

	q := query.Next(bank, rng)
	view := q.Jsonify(bank)

	correctTerm := bank.terms[q.options[q.correct]]
	if view.Definition != correctTerm.Definition {
		t.Fatalf("jsonified definition %q doesn't match correct option's definition %q", view.Definition, correctTerm.Definition)
	}
	if !q.IsCorrect(q.correct) {
		t.Fatal("expected IsCorrect(correct index) to be true")
	}
	if q.IsCorrect((q.correct + 1) % 4) {
		t.Fatal("expected IsCorrect on a wrong index to be false")
	}
}
