package photonwalk

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config describes a run. Omitted fields take the defaults from const.go.
// Medium fields default to the Sun only when absent; an explicit zero is
// rejected. For the counters zero means the default.
type Config struct {
	Medium          Medium `json:"medium" yaml:"medium" mapstructure:"medium"`
	Seed            int64  `json:"seed,omitempty" yaml:"seed,omitempty" mapstructure:"seed"`
	FPS             int    `json:"fps,omitempty" yaml:"fps,omitempty" mapstructure:"fps"` // negative means unthrottled
	StepsPerFrame   int    `json:"stepsPerFrame,omitempty" yaml:"stepsPerFrame,omitempty" mapstructure:"stepsPerFrame"`
	MaxSteps        int    `json:"maxSteps,omitempty" yaml:"maxSteps,omitempty" mapstructure:"maxSteps"`
	StarCount       int    `json:"starCount,omitempty" yaml:"starCount,omitempty" mapstructure:"starCount"`
	StarMinDistance Real   `json:"starMinDistance,omitempty" yaml:"starMinDistance,omitempty" mapstructure:"starMinDistance"`
	Walks           int    `json:"walks,omitempty" yaml:"walks,omitempty" mapstructure:"walks"`
	Workers         int    `json:"workers,omitempty" yaml:"workers,omitempty" mapstructure:"workers"`
	Listen          string `json:"listen,omitempty" yaml:"listen,omitempty" mapstructure:"listen"`
}

// DefaultConfig is the Sun at 60 steps per second.
func DefaultConfig() *Config {
	cfg := &Config{Medium: Sun()}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a JSON or YAML (by extension) config; an empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	// decoding overlays the file on the Sun, so only absent medium keys keep its values
	cfg := Config{Medium: Sun()}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			if err := json.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.FPS == 0 {
		c.FPS = FPS
	}
	if c.StepsPerFrame <= 0 {
		c.StepsPerFrame = StepsPerFrame
	}
	if c.StarCount == 0 {
		c.StarCount = StarCount
	}
	if c.StarMinDistance == 0 {
		c.StarMinDistance = StarMinDistance
	}
	if c.Walks <= 0 {
		c.Walks = EnsembleWalks
	}
	if c.Listen == "" {
		c.Listen = ListenAddr
	}
}

// Validate checks the medium and the counters that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Medium.Validate(); err != nil {
		errs = append(errs, ConfigurationErrors(err)...)
	}
	if c.MaxSteps < 0 {
		errs = append(errs, &ConfigurationError{Key: "maxSteps", Reason: "must be >= 0", Value: c.MaxSteps})
	}
	if c.StarCount < 0 {
		errs = append(errs, &ConfigurationError{Key: "starCount", Reason: "must be >= 0", Value: c.StarCount})
	}
	if !isFinite(c.StarMinDistance) || c.StarMinDistance < 0 {
		errs = append(errs, &ConfigurationError{Key: "starMinDistance", Reason: "must be a finite number >= 0", Value: c.StarMinDistance})
	}
	return aggregate(errs)
}

// ApplyOverrides sets fields from "key=value" pairs, nested keys separated by
// dots (e.g. "medium.opacity=4"). Values are converted weakly, so strings work.
func (c *Config) ApplyOverrides(pairs []string) error {
	if len(pairs) == 0 {
		return nil
	}
	tree := map[string]any{}
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return &ConfigurationError{Key: kv, Reason: "override must be key=value"}
		}
		parts := strings.Split(key, ".")
		node := tree
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = strings.TrimSpace(value)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(tree); err != nil {
		return fmt.Errorf("invalid override: %w", err)
	}
	c.applyDefaults()
	return c.Validate()
}

// Rand returns a generator seeded from Seed, or from the clock when Seed is zero.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Ensemble returns the ensemble options of this config.
func (c *Config) Ensemble() EnsembleOptions {
	return EnsembleOptions{Walks: c.Walks, Workers: c.Workers, MaxSteps: c.MaxSteps, Seed: c.Seed}
}
