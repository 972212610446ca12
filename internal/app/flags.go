package app

import (
	"flag"

	"epi-ca/internal/sims/epidemic"
)

// Config represents the command-line parameters for the GUI application.
type Config struct {
	Scale int
	TPS   int
	Sim   epidemic.Config
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 12, TPS: 60, Sim: epidemic.DefaultConfig()}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second; ticks are paced by -speed")
	BindSim(fs, &c.Sim)
}

// BindSim registers one flag per epidemic setting on fs.
func BindSim(fs *flag.FlagSet, cfg *epidemic.Config) {
	fs.IntVar(&cfg.GridSize, "size", cfg.GridSize, "grid side length")
	fs.IntVar(&cfg.Population, "population", cfg.Population, "individuals to place (0 = manual placement)")
	fs.IntVar(&cfg.InitialInfected, "infected", cfg.InitialInfected, "initially infected individuals")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for placement and transmission draws")
	fs.IntVar(&cfg.TickSpeed, "speed", cfg.TickSpeed, "tick speed setting (10-1000)")
	fs.Float64Var(&cfg.Params.InfectionRadius, "radius", cfg.Params.InfectionRadius, "transmission radius in cells")
	fs.Float64Var(&cfg.Params.InfectionRate, "rate", cfg.Params.InfectionRate, "transmission probability at distance 1")
	fs.IntVar(&cfg.Params.InfectionDuration, "duration", cfg.Params.InfectionDuration, "ticks until an infection resolves")
	fs.Float64Var(&cfg.Params.MortalityRate, "mortality", cfg.Params.MortalityRate, "probability of death at resolution")
	fs.Float64Var(&cfg.Params.ImmunityLevel, "immunity", cfg.Params.ImmunityLevel, "probability of immunity among survivors")
}
