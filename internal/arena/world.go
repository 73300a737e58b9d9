package arena

import (
	"fmt"
	"math/rand"
	"time"
)

// Star is a fixed decorative point in the play area, generated once
// at startup and shared by every player's broadcast frame.
type Star struct {
	X, Y float64
}

// Player is one connected peer's simulated body: position, facing,
// cosmetic color, remaining shields, and current question. Position
// is only valid as of lastTick; callers must advance physics before
// reading it.
type Player struct {
	X, Y, Facing float64
	Color        string
	Shield       int
	Question     Question
}

func (p Player) velocity() (vx, vy float64) { return velocity(p.Facing) }

// Laser is a fired shot: the origin and facing it was cast from, and
// the wall-clock time (in milliseconds since World.start) at which it
// should drop out of the broadcast lasers list.
type Laser struct {
	X, Y, Facing float64
	ExpireMillis float64
}

// World holds one arena instance's full simulation state: the player
// map, active lasers, the fixed star field, and the term bank
// Questions are dealt from. All physics advances lazily: update is
// called before any mutation or read that depends on current
// position, mirroring the reactive-simulation style of the system
// this tenant is modeled on.
type World struct {
	stars         []Star
	players       map[uint64]*Player
	lasers        []Laser
	bank          *TermBank
	rng           *rand.Rand
	lastTickMillis float64
	start         time.Time
}

// NewWorld generates a fresh star field and returns an empty world
// quizzing from bank.
func NewWorld(bank *TermBank, rng *rand.Rand) *World {
	stars := make([]Star, StarCount)
	for i := range stars {
		stars[i] = Star{X: rng.Float64() * Width, Y: rng.Float64() * Height}
	}
	return &World{
		stars:   stars,
		players: make(map[uint64]*Player),
		bank:    bank,
		rng:     rng,
		start:   time.Now(),
	}
}

func (w *World) nowMillis() float64 {
	return float64(time.Since(w.start).Milliseconds())
}

// Update advances physics to the current instant: every player's
// position is translated by its velocity times the elapsed time since
// the last advance, wrapped into the arena bounds, and expired lasers
// are dropped.
func (w *World) Update() {
	now := w.nowMillis()
	elapsed := now - w.lastTickMillis
	w.lastTickMillis = now

	live := w.lasers[:0]
	for _, l := range w.lasers {
		if l.ExpireMillis >= now {
			live = append(live, l)
		}
	}
	w.lasers = live

	for _, p := range w.players {
		vx, vy := p.velocity()
		p.X = wrap(p.X+vx*elapsed, Width)
		p.Y = wrap(p.Y-vy*elapsed, Height)
	}
}

// Join seats a new player at a random position and facing with full
// shields and a fresh question.
func (w *World) Join(id uint64) {
	w.players[id] = &Player{
		X:        w.rng.Float64() * Width,
		Y:        w.rng.Float64() * Height,
		Facing:   w.rng.Float64() * Tau,
		Color:    fmt.Sprintf("rgb(%d,%d,%d)", w.rng.Intn(256), w.rng.Intn(256), w.rng.Intn(256)),
		Shield:   3,
		Question: NewQuestion(w.bank, w.rng),
	}
}

// Has reports whether id is currently seated.
func (w *World) Has(id uint64) bool {
	_, ok := w.players[id]
	return ok
}

// Leave removes a player from the world.
func (w *World) Leave(id uint64) {
	delete(w.players, id)
}

// UpdateFacing advances physics, then sets id's facing.
func (w *World) UpdateFacing(id uint64, facing float64) {
	w.Update()
	w.players[id].Facing = facing
}

// Guess resolves id's current question: on a correct guess their
// shield is incremented and a new question dealt (returns true); on
// an incorrect guess nothing changes (returns false, and the caller
// is expected to drop the player per the runtime contract).
func (w *World) Guess(id uint64, guessIsLeft bool) bool {
	p := w.players[id]
	correct := p.Question.Guess(guessIsLeft)
	if correct {
		p.Shield++
		p.Question = NewQuestion(w.bank, w.rng)
	}
	return correct
}

// Fire advances physics, then (if id has a shield) spawns a laser
// along id's facing from their current position, consuming one
// shield. Every other player whose body intersects the ray loses a
// shield, or — if already at zero — is returned in killed for the
// caller to notify and drop.
func (w *World) Fire(id uint64) (killed []uint64) {
	w.Update()

	shooter := w.players[id]
	if shooter.Shield == 0 {
		return nil
	}
	shooter.Shield--

	rayX, rayY, facing := shooter.X, shooter.Y, shooter.Facing

	for otherID, other := range w.players {
		if otherID == id {
			continue
		}
		if !intersectCircle(other.X, other.Y, PlayerRadius, rayX, rayY, facing) {
			continue
		}
		if other.Shield > 0 {
			other.Shield--
		} else {
			killed = append(killed, otherID)
		}
	}

	w.lasers = append(w.lasers, Laser{X: rayX, Y: rayY, Facing: facing, ExpireMillis: w.nowMillis() + LaserDurationMillis})
	return killed
}
