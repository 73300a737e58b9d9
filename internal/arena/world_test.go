package arena

import (
	"math/rand"
	"testing"
)

func testBank() *TermBank {
	return NewTermBank([]Term{
		{Name: "mitochondria", Definition: "the powerhouse of the cell"},
		{Name: "ribosome", Definition: "synthesizes proteins"},
	})
}

func TestJoinSeatsPlayerWithinBounds(t *testing.T) {
	w := NewWorld(testBank(), rand.New(rand.NewSource(1)))
	w.Join(1)

	if !w.Has(1) {
		t.Fatal("expected player 1 to be seated")
	}
	p := w.players[1]
	if p.X < 0 || p.X >= Width || p.Y < 0 || p.Y >= Height {
		t.Fatalf("player position out of bounds: (%v, %v)", p.X, p.Y)
	}
	if p.Shield != 3 {
		t.Fatalf("expected initial shield 3, got %d", p.Shield)
	}
}

func TestUpdateKeepsPositionsInBounds(t *testing.T) {
	w := NewWorld(testBank(), rand.New(rand.NewSource(1)))
	w.Join(1)
	w.players[1].X = Width - 0.001
	w.players[1].Facing = 0 // facing +x

	for i := 0; i < 5; i++ {
		w.Update()
		p := w.players[1]
		if p.X < 0 || p.X >= Width || p.Y < 0 || p.Y >= Height {
			t.Fatalf("tick %d: position out of bounds: (%v, %v)", i, p.X, p.Y)
		}
	}
}

func TestFireWithZeroShieldIsNoop(t *testing.T) {
	w := NewWorld(testBank(), rand.New(rand.NewSource(1)))
	w.Join(1)
	w.Join(2)
	w.players[1].Shield = 0
	w.players[2].X, w.players[2].Y = w.players[1].X+3, w.players[1].Y
	w.players[1].Facing = 0

	killed := w.Fire(1)
	if killed != nil {
		t.Fatalf("expected no kills from a shieldless shooter, got %v", killed)
	}
	if w.players[2].Shield != 3 {
		t.Fatalf("expected untouched target shield, got %d", w.players[2].Shield)
	}
}

func TestFireDecrementsShieldOnHitThenKills(t *testing.T) {
	w := NewWorld(testBank(), rand.New(rand.NewSource(1)))
	w.Join(1)
	w.Join(2)
	w.players[1].Facing = 0
	w.players[2].X, w.players[2].Y = w.players[1].X+3, w.players[1].Y
	w.players[2].Shield = 1

	killed := w.Fire(1)
	if killed != nil {
		t.Fatalf("first hit should only deplete shield, not kill: %v", killed)
	}
	if w.players[2].Shield != 0 {
		t.Fatalf("expected target shield decremented to 0, got %d", w.players[2].Shield)
	}
	if w.players[1].Shield != 2 {
		t.Fatalf("expected shooter shield decremented to 2, got %d", w.players[1].Shield)
	}

	killed = w.Fire(1)
	if len(killed) != 1 || killed[0] != 2 {
		t.Fatalf("expected player 2 to be marked for removal, got %v", killed)
	}
}

func TestGuessCorrectGrantsShieldAndNewQuestion(t *testing.T) {
	w := NewWorld(testBank(), rand.New(rand.NewSource(1)))
	w.Join(1)
	before := w.players[1].Shield
	q := w.players[1].Question

	correctGuess := q.leftIsCorrect
	ok := w.Guess(1, correctGuess)
	if !ok {
		t.Fatal("expected the correct guess to be reported as correct")
	}
	if w.players[1].Shield != before+1 {
		t.Fatalf("expected shield to increase by 1, got %d -> %d", before, w.players[1].Shield)
	}
}

func TestGuessIncorrectReportsFalse(t *testing.T) {
	w := NewWorld(testBank(), rand.New(rand.NewSource(1)))
	w.Join(1)
	q := w.players[1].Question

	ok := w.Guess(1, !q.leftIsCorrect)
	if ok {
		t.Fatal("expected the incorrect guess to be reported as incorrect")
	}
}
