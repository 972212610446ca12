//go:build ebiten

package app

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"epi-ca/internal/core"
	"epi-ca/internal/render"
	"epi-ca/internal/sims/epidemic"
	"epi-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the statistics and controls panel.
const HUDWidth = 280

// Game adapts an epidemic simulation to the ebiten.Game interface. It is the
// single writer: ticks, resets and placement edits all run from Update.
type Game struct {
	sim     *epidemic.Simulation
	painter *render.GridPainter
	hud     *ui.HUD
	timer   *core.FixedStep
	log     *slog.Logger

	scale    int
	running  bool
	tickOnce bool
	seed     int64
	message  string
}

// New constructs a Game for the provided simulation.
func New(sim *epidemic.Simulation, scale int, seed int64, logger *slog.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, HUDWidth),
		timer:   core.NewFixedStep(sim.Config().Delay()),
		log:     logger,
		scale:   scale,
		seed:    seed,
		message: placementHint(sim),
	}
}

// Reset rebuilds the simulation with the provided seed, applying any staged
// structural parameters.
func (g *Game) Reset(seed int64) {
	g.running = false
	g.tickOnce = false
	if err := g.sim.Reset(seed); err != nil {
		g.message = err.Error()
		g.log.Error("reset rejected", "err", err)
		return
	}
	g.seed = seed
	size := g.sim.Size()
	if w, h := g.painter.Size(); w != size.W || h != size.H {
		g.painter = render.NewGridPainter(size.W, size.H)
	}
	g.message = placementHint(g.sim)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.running {
			g.running = false
			g.message = "Paused"
		} else {
			g.start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !g.running {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(ClockSeed(time.Now()))
	}

	size := g.sim.Size()
	panelX := size.W * g.scale
	if !g.hud.Update(panelX) && !g.running {
		g.handlePlacement()
	}
	g.timer.SetDelay(g.sim.Config().Delay())

	switch {
	case g.tickOnce:
		g.tickOnce = false
		g.advance()
	case g.running && g.timer.ShouldStep(time.Now()):
		g.advance()
	}

	g.hud.SetStatus(statusLines(g.sim), g.message)
	return nil
}

func (g *Game) start() {
	if err := g.sim.Ready(); err != nil {
		g.message = "Cannot start: " + err.Error()
		return
	}
	if g.sim.Ended() {
		g.message = "Epidemic over; press R to reset"
		return
	}
	g.running = true
	g.message = ""
}

func (g *Game) advance() {
	if g.sim.Step() {
		return
	}
	g.running = false
	g.message = fmt.Sprintf("Stopped at tick %d", g.sim.Tick())
	g.log.Debug("run stopped", "tick", g.sim.Tick(), "dead", g.sim.Stats().Dead)
}

func (g *Game) handlePlacement() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	size := g.sim.Size()
	x, y := ebiten.CursorPosition()
	row, col, ok := render.CellAt(x, y, g.scale, size.W, size.H)
	if !ok {
		return
	}
	g.sim.Toggle(row, col)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.sim.Palette(), g.scale)
	size := g.sim.Size()
	_, height := g.Layout(0, 0)
	g.hud.Draw(screen, size.W*g.scale, height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	h := s.H * g.scale
	if h < minHeight {
		h = minHeight
	}
	return s.W*g.scale + g.hud.Width(), h
}

const minHeight = 520

func placementHint(sim *epidemic.Simulation) string {
	if sim.Config().ManualPlacement() {
		return "Click cells to place individuals"
	}
	return ""
}

func statusLines(sim *epidemic.Simulation) []ui.StatusLine {
	c := sim.Stats()
	return []ui.StatusLine{
		{Label: "Tick", Value: strconv.Itoa(c.Tick)},
		{Label: "Healthy", Value: strconv.Itoa(c.Healthy), Swatch: epidemic.StatusColor(epidemic.Healthy)},
		{Label: "Infected", Value: strconv.Itoa(c.Infected), Swatch: epidemic.StatusColor(epidemic.Infected)},
		{Label: "Recovered", Value: strconv.Itoa(c.Recovered), Swatch: epidemic.StatusColor(epidemic.Recovered)},
		{Label: "Dead", Value: strconv.Itoa(c.Dead), Swatch: epidemic.StatusColor(epidemic.Dead)},
		{Label: "Total", Value: strconv.Itoa(c.Total)},
	}
}
