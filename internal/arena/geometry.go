// Package arena implements the tick-driven multiplayer arena tenant
// (C10): free-roaming players, ray-based laser fire with closed-form
// hit detection, and a per-player trivia question awarding shields.
package arena

import "math"

// Width and Height are the wraparound bounds of the play area.
const (
	Width  = 500.0
	Height = 500.0
)

// PlayerVelocity is the player's linear speed in units/millisecond.
const PlayerVelocity = 0.04

// PlayerRadius is the collision radius used by ray-circle hit tests.
const PlayerRadius = 10.0

// LaserDurationMillis is how long a fired laser remains in the
// broadcast lasers list before expiring.
const LaserDurationMillis = 300.0

// StarCount is the number of stars generated once at startup.
const StarCount = 30

// Tau is a full turn in radians, the upper bound for a random facing.
const Tau = 2 * math.Pi

// velocity resolves a facing angle to its (vx, vy) components at
// PlayerVelocity. The y component is returned un-negated; Update
// subtracts it from the screen-space y (where increasing y is
// "down"), so facing 0 points right and facing pi/2 points up.
func velocity(facing float64) (vx, vy float64) {
	return PlayerVelocity * math.Cos(facing), PlayerVelocity * math.Sin(facing)
}

// wrap reduces n into [0, rng) regardless of sign.
func wrap(n, rng float64) float64 {
	n = math.Mod(n, rng)
	if n < 0 {
		n += rng
	}
	return n
}

// intersectCircle reports whether the ray cast from (rayX, rayY) at
// angle rayAngle hits the circle centered at (circleX, circleY) with
// the given radius, using the closed-form condition: the quadratic
// formed by substituting the ray's parametric form into the circle
// equation must have a nonnegative discriminant, and the forward
// (non-negative) root must exist.
func intersectCircle(circleX, circleY, radius, rayX, rayY, rayAngle float64) bool {
	sin, cos := math.Sin(rayAngle), math.Cos(rayAngle)

	b := circleY*sin - circleX*cos + rayX*cos - rayY*sin
	discriminant := b*b - rayX*rayX - rayY*rayY +
		2*circleX*rayX + 2*circleY*rayY -
		circleY*circleY - circleX*circleX + radius*radius

	return discriminant >= 0 && -b+math.Sqrt(discriminant) >= 0
}
