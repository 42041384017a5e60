package photonwalk

// Medium describes the star the photon travels through.
// Opacity, Density and Radius are physical quantities; Scale maps them into scene units.
type Medium struct {
	Opacity Real `json:"opacity" yaml:"opacity" mapstructure:"opacity"`
	Density Real `json:"density" yaml:"density" mapstructure:"density"`
	Radius  Real `json:"radius" yaml:"radius" mapstructure:"radius"`
	Scale   Real `json:"scale,omitempty" yaml:"scale,omitempty" mapstructure:"scale"`
}

// Sun returns the default medium.
func Sun() Medium {
	return Medium{Opacity: SunOpacity, Density: SunDensity, Radius: SunRadius, Scale: ScaleFactor}
}

// StepLength is the unscaled mean free path 1/(opacity*density).
func (m Medium) StepLength() Real { return 1 / (m.Opacity * m.Density) }

// ScaledStepLength is the mean free path in scene units.
func (m Medium) ScaledStepLength() Real { return m.StepLength() * m.Scale }

// BoundaryRadius is the escape radius in scene units.
func (m Medium) BoundaryRadius() Real { return m.Radius * m.Scale }

// Validate reports every non-positive or non-finite constant.
func (m Medium) Validate() error {
	var errs []error
	check := func(key string, v Real) {
		if !isPositive(v) {
			errs = append(errs, &ConfigurationError{Key: key, Reason: "must be a finite number > 0", Value: v})
		}
	}
	check("opacity", m.Opacity)
	check("density", m.Density)
	check("radius", m.Radius)
	check("scale", m.Scale)
	if len(errs) == 0 && !isPositive(m.ScaledStepLength()) {
		errs = append(errs, &ConfigurationError{Key: "opacity*density", Reason: "step length is not representable", Value: m.ScaledStepLength()})
	}
	return aggregate(errs)
}
