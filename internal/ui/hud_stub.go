//go:build !ebiten

package ui

import (
	"image/color"

	"epi-ca/internal/core"
)

// StatusLine is one row of the statistics block.
type StatusLine struct {
	Label  string
	Value  string
	Swatch color.Color
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int) *HUD { return nil }

// Width is always zero in the headless build.
func (h *HUD) Width() int { return 0 }

// SetStatus is a no-op in the headless build.
func (h *HUD) SetStatus([]StatusLine, string) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
