package photonwalk

import (
	"math"
	"math/rand"
)

// starCoord returns an integer coordinate in [-StarSpread/2, StarSpread/2).
func starCoord(rng *rand.Rand) Real {
	return math.Floor(rng.Float64()*StarSpread - StarSpread/2)
}

// GenerateStars places count candidate background stars and keeps those at
// least minDistance away from the star's center.
func GenerateStars(rng *rand.Rand, count int, minDistance Real) []Point3 {
	stars := make([]Point3, 0, count)
	for i := 0; i < count; i++ {
		p := Point3{starCoord(rng), starCoord(rng), starCoord(rng)}
		if Distance(p) >= minDistance {
			stars = append(stars, p)
		}
	}
	return stars
}
