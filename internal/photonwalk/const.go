package photonwalk

// Sun model and scene defaults.
const (
	SunOpacity      = 8
	SunDensity      = 1408
	SunRadius       = 0.005
	ScaleFactor     = 100000
	YearsFactor     = 48.32 // folds the speed of light and the unit scale into years
	FPS             = 60    // 60 steps make one second on screen
	StepsPerFrame   = 1
	StarCount       = 1000
	StarMinDistance = 3000
	StarSpread      = 10000 // stars are placed in a cube of this edge around the origin
	EnsembleWalks   = 100
	ListenAddr      = ":8080"
	// checked every ctxCheckEvery steps by unbounded loops
	ctxCheckEvery = 1024
)
