package epidemic

import (
	"strconv"

	"epi-ca/internal/core"
)

var controls = []core.ParameterControl{
	{Key: "radius", Label: "Infection radius", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, Max: 10, HasMin: true, HasMax: true},
	{Key: "rate", Label: "Infection rate", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "duration", Label: "Infection duration", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 500, HasMin: true, HasMax: true},
	{Key: "mortality", Label: "Mortality rate", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "immunity", Label: "Immunity level", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "speed", Label: "Tick speed", Type: core.ParamTypeInt, Step: 10, Min: core.SpeedMin, Max: core.SpeedMax, HasMin: true, HasMax: true},
	{Key: "size", Label: "Grid size", Type: core.ParamTypeInt, Step: 5, Min: 1, Max: 400, HasMin: true, HasMax: true, Structural: true},
	{Key: "population", Label: "Population", Type: core.ParamTypeInt, Step: 50, Min: 0, HasMin: true, Structural: true},
	{Key: "infected", Label: "Initial infected", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Structural: true},
}

func controlFor(key string) (core.ParameterControl, bool) {
	for _, c := range controls {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// Parameters reports the active run next to any staged structural changes.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	p := s.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Population",
			Params: []core.Parameter{
				intParam("size", "Grid size", s.pending.GridSize),
				intParam("population", "Population", s.pending.Population),
				intParam("infected", "Initial infected", s.pending.InitialInfected),
				int64Param("seed", "Seed", s.cfg.Seed),
			},
			Summary: "Applied on reset",
		},
		{
			Name: "Disease",
			Params: []core.Parameter{
				floatParam("radius", "Infection radius", p.InfectionRadius),
				floatParam("rate", "Infection rate", p.InfectionRate),
				intParam("duration", "Infection duration", p.InfectionDuration),
				floatParam("mortality", "Mortality rate", p.MortalityRate),
				floatParam("immunity", "Immunity level", p.ImmunityLevel),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("speed", "Tick speed", s.cfg.TickSpeed),
				intParam("tick", "Tick", s.tick),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, len(controls))
	copy(out, controls)
	return out
}

// SetIntParameter updates an integer parameter, clamped to its control range.
// Structural keys are staged for the next Reset.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	v := int(ctrl.Clamp(float64(value)))
	switch key {
	case "duration":
		s.cfg.Params.InfectionDuration = v
		s.pending.Params.InfectionDuration = v
	case "speed":
		s.cfg.TickSpeed = v
		s.pending.TickSpeed = v
	case "size":
		s.pending.GridSize = v
	case "population":
		s.pending.Population = v
	case "infected":
		s.pending.InitialInfected = v
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a probability or the radius, clamped to range.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	v := ctrl.Clamp(value)
	p := s.cfg.Params
	switch key {
	case "radius":
		p.InfectionRadius = v
	case "rate":
		p.InfectionRate = v
	case "mortality":
		p.MortalityRate = v
	case "immunity":
		p.ImmunityLevel = v
	default:
		return false
	}
	return s.SetParams(p) == nil
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
