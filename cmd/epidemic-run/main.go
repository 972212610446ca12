// Command epidemic-run drives the epidemic automaton without a window and
// exports its statistics history once the run stops.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"epi-ca/internal/app"
	"epi-ca/internal/sims/epidemic"
)

func main() {
	cfg := epidemic.DefaultConfig()
	fs := flag.CommandLine
	app.BindSim(fs, &cfg)
	ticks := fs.Int("ticks", 1000, "maximum ticks to run (0 = until the epidemic ends)")
	csvPath := fs.String("csv", "", "write the statistics history as CSV to this path")
	chartPath := fs.String("chart", "", "write a PNG chart of the history to this path")
	window := fs.Bool("window", false, "chart only the most recent samples, as the live view does")
	realtime := fs.Bool("realtime", false, "sleep between ticks according to -speed")
	logEvery := fs.Int("log-every", 50, "log counts every N ticks (0 disables)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	sim, err := epidemic.New(cfg, epidemic.WithLogger(logger))
	if err != nil {
		log.Fatalf("configure epidemic: %v", err)
	}
	if err := sim.Ready(); err != nil {
		log.Fatalf("cannot start: %v", err)
	}

	started := time.Now()
	for *ticks == 0 || sim.Tick() < *ticks {
		active := sim.Step()
		if *logEvery > 0 && sim.Tick()%*logEvery == 0 {
			c := sim.Stats()
			logger.Info("tick",
				"tick", c.Tick,
				"healthy", c.Healthy,
				"infected", c.Infected,
				"recovered", c.Recovered,
				"dead", c.Dead)
		}
		if !active {
			break
		}
		if *realtime {
			time.Sleep(sim.Config().Delay())
		}
	}

	final := sim.Stats()
	logger.Info("run finished",
		"ticks", final.Tick,
		"ended", sim.Ended(),
		"recovered", final.Recovered,
		"dead", final.Dead,
		"elapsed", time.Since(started).Round(time.Millisecond))

	samples := sim.History().Samples()
	if *csvPath != "" {
		if err := writeFile(*csvPath, func(f *os.File) error { return epidemic.WriteCSV(f, samples) }); err != nil {
			log.Fatalf("write csv: %v", err)
		}
	}
	if *chartPath != "" {
		if err := writeFile(*chartPath, func(f *os.File) error { return epidemic.RenderChart(f, chartSamples(sim.History(), *window)) }); err != nil {
			log.Fatalf("write chart: %v", err)
		}
	}
}

// chartSamples picks the samples to plot: the rolling window or every tick.
func chartSamples(h *epidemic.History, window bool) []epidemic.Counts {
	if window {
		return h.Window()
	}
	return h.Samples()
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
