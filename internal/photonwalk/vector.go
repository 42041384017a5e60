package photonwalk

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Real = float64

// Point3 is a position in scene units relative to the star's center.
type Point3 = mgl64.Vec3

// Origin is the star's center.
var Origin = Point3{0, 0, 0}

// Distance returns the Euclidean distance of p from the origin.
func Distance(p Point3) Real { return p.Len() }

// displacement returns one step of length l along (theta, phi).
// Products are evaluated left to right, L*sin(phi)*cos(theta), so that a
// fixed angle sequence reproduces the same trajectory bit for bit.
func displacement(l, theta, phi Real) Point3 {
	return Point3{
		l * math.Sin(phi) * math.Cos(theta),
		l * math.Sin(phi) * math.Sin(theta),
		l * math.Cos(phi),
	}
}
