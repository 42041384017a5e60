package photonwalk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomAngles_Formula(t *testing.T) {
	a := NewRandomAngles(rand.New(rand.NewSource(1)))
	ref := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		theta, phi := a.Angles()
		// theta is drawn before phi
		wantTheta := 2 * math.Pi * ref.Float64()
		wantPhi := math.Pi - 2*math.Pi*ref.Float64()
		require.Equal(t, wantTheta, theta)
		require.Equal(t, wantPhi, phi)
	}
}

func TestRandomAngles_Ranges(t *testing.T) {
	a := NewRandomAngles(rand.New(rand.NewSource(2)))
	const M = 100000
	var sumPhi Real
	for i := 0; i < M; i++ {
		theta, phi := a.Angles()
		require.GreaterOrEqual(t, theta, 0.0)
		require.Less(t, theta, 2*math.Pi)
		require.Greater(t, phi, -math.Pi)
		require.LessOrEqual(t, phi, math.Pi)
		sumPhi += phi
	}
	// phi is uniform on (-π, π], so its mean is ~0
	assert.InDelta(t, 0, sumPhi/M, 0.05)
}

func TestFixedAngles(t *testing.T) {
	a := FixedAngles{Theta: 1, Phi: 2}
	for i := 0; i < 3; i++ {
		theta, phi := a.Angles()
		assert.Equal(t, Real(1), theta)
		assert.Equal(t, Real(2), phi)
	}
}

func TestSequenceAngles_Cycles(t *testing.T) {
	pairs := [][2]Real{{1, 2}, {3, 4}, {5, 6}}
	a := NewSequenceAngles(pairs...)
	pairs[0] = [2]Real{9, 9} // the sequence keeps its own copy
	want := [][2]Real{{1, 2}, {3, 4}, {5, 6}, {1, 2}, {3, 4}}
	for _, w := range want {
		theta, phi := a.Angles()
		assert.Equal(t, w, [2]Real{theta, phi})
	}
	assert.Panics(t, func() { NewSequenceAngles() })
}
