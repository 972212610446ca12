package epidemic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"epi-ca/internal/core"
)

// ErrInvalidConfig is matched by every configuration rejection.
var ErrInvalidConfig = errors.New("invalid epidemic configuration")

// ConfigError names the offending field of a rejected configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Params is the read-only snapshot the step engine consumes each tick.
type Params struct {
	InfectionRadius   float64
	InfectionRate     float64
	InfectionDuration int
	MortalityRate     float64
	ImmunityLevel     float64
}

// Validate rejects parameters the step engine cannot run with.
func (p Params) Validate() error {
	if p.InfectionRadius < 0 || math.IsNaN(p.InfectionRadius) || math.IsInf(p.InfectionRadius, 0) {
		return &ConfigError{Field: "radius", Reason: fmt.Sprintf("must be a finite value >= 0, got %v", p.InfectionRadius)}
	}
	if err := checkUnit("rate", p.InfectionRate); err != nil {
		return err
	}
	if p.InfectionDuration <= 0 {
		return &ConfigError{Field: "duration", Reason: fmt.Sprintf("must be > 0, got %d", p.InfectionDuration)}
	}
	if err := checkUnit("mortality", p.MortalityRate); err != nil {
		return err
	}
	return checkUnit("immunity", p.ImmunityLevel)
}

func checkUnit(field string, v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("must be within [0,1], got %v", v)}
	}
	return nil
}

// Config controls the epidemic simulation dimensions, seeding and rules.
type Config struct {
	GridSize        int
	Population      int
	InitialInfected int

	Seed int64

	// TickSpeed is the speed control setting consumed by drivers through
	// core.DelayForSpeed.
	TickSpeed int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		GridSize:        50,
		Population:      400,
		InitialInfected: 5,
		Seed:            1337,
		TickSpeed:       100,
		Params: Params{
			InfectionRadius:   2,
			InfectionRate:     0.1,
			InfectionDuration: 50,
			MortalityRate:     0.05,
			ImmunityLevel:     0.9,
		},
	}
}

// Validate checks the structural settings and the rule parameters.
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return &ConfigError{Field: "size", Reason: fmt.Sprintf("grid size must be positive, got %d", c.GridSize)}
	}
	if c.Population < 0 {
		return &ConfigError{Field: "population", Reason: fmt.Sprintf("must be >= 0, got %d", c.Population)}
	}
	if c.InitialInfected < 0 {
		return &ConfigError{Field: "infected", Reason: fmt.Sprintf("must be >= 0, got %d", c.InitialInfected)}
	}
	return c.Params.Validate()
}

// ManualPlacement reports whether the configuration leaves the grid empty for
// hand placement.
func (c Config) ManualPlacement() bool { return c.Population == 0 }

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed values are ignored and keep their defaults; range checking is left
// to Validate.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.GridSize = parsed
		}
	}
	if v, ok := cfg["population"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Population = parsed
		}
	}
	if v, ok := cfg["infected"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.InitialInfected = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.TickSpeed = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.InfectionRadius = parsed
		}
	}
	if v, ok := cfg["rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.InfectionRate = parsed
		}
	}
	if v, ok := cfg["duration"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.InfectionDuration = parsed
		}
	}
	if v, ok := cfg["mortality"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.MortalityRate = parsed
		}
	}
	if v, ok := cfg["immunity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.ImmunityLevel = parsed
		}
	}
	return c
}

// Delay is a shorthand for the tick interval implied by TickSpeed.
func (c Config) Delay() time.Duration { return core.DelayForSpeed(c.TickSpeed) }
