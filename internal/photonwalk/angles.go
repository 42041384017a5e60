package photonwalk

import (
	"math"
	"math/rand"
)

// AngleSource yields the (azimuthal, polar) angle pair of the next step.
type AngleSource interface {
	Angles() (theta, phi Real)
}

// RandomAngles draws theta ~ U(0, 2π) and then phi = π - 2π·u with u ~ U(0, 1).
// The resulting directions are not uniform on the sphere.
type RandomAngles struct {
	rng *rand.Rand
}

func NewRandomAngles(rng *rand.Rand) *RandomAngles {
	return &RandomAngles{rng: rng}
}

func (a *RandomAngles) Angles() (theta, phi Real) {
	theta = 2 * math.Pi * a.rng.Float64()
	phi = math.Pi - 2*math.Pi*a.rng.Float64()
	return theta, phi
}

// FixedAngles returns the same pair forever.
type FixedAngles struct {
	Theta, Phi Real
}

func (a FixedAngles) Angles() (theta, phi Real) { return a.Theta, a.Phi }

// SequenceAngles cycles through a fixed list of pairs.
type SequenceAngles struct {
	pairs [][2]Real
	next  int
}

// NewSequenceAngles panics on an empty list.
func NewSequenceAngles(pairs ...[2]Real) *SequenceAngles {
	if len(pairs) == 0 {
		panic("angle sequence must not be empty")
	}
	cp := make([][2]Real, len(pairs))
	copy(cp, pairs)
	return &SequenceAngles{pairs: cp}
}

func (a *SequenceAngles) Angles() (theta, phi Real) {
	p := a.pairs[a.next]
	a.next = (a.next + 1) % len(a.pairs)
	return p[0], p[1]
}
