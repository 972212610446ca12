package epidemic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNoHistory is returned when there is nothing to export.
	ErrNoHistory = errors.New("no statistics recorded")
	// ErrChartTooShort is returned when a chart would span a single tick.
	ErrChartTooShort = errors.New("chart needs samples from at least two ticks")
)

var csvHeader = []string{"Tick", "Healthy", "Infected", "Recovered", "Dead"}

// WriteCSV writes samples as semicolon-separated rows under a header line.
func WriteCSV(w io.Writer, samples []Counts) error {
	if len(samples) == 0 {
		return ErrNoHistory
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	cw.UseCRLF = true
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range samples {
		row := []string{
			strconv.Itoa(c.Tick),
			strconv.Itoa(c.Healthy),
			strconv.Itoa(c.Infected),
			strconv.Itoa(c.Recovered),
			strconv.Itoa(c.Dead),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for tick %d: %w", c.Tick, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderChart draws the healthy, infected, recovered and dead series of
// samples as a PNG line chart.
func RenderChart(w io.Writer, samples []Counts) error {
	if len(samples) == 0 {
		return ErrNoHistory
	}
	first, last := samples[0].Tick, samples[len(samples)-1].Tick
	if last <= first {
		return ErrChartTooShort
	}

	ticks := make([]float64, len(samples))
	series := make([][]float64, 4)
	for i := range series {
		series[i] = make([]float64, len(samples))
	}
	peak := 1
	for i, c := range samples {
		ticks[i] = float64(c.Tick)
		series[0][i] = float64(c.Healthy)
		series[1][i] = float64(c.Infected)
		series[2][i] = float64(c.Recovered)
		series[3][i] = float64(c.Dead)
		peak = max(peak, c.Total)
	}

	names := []string{"Healthy", "Infected", "Recovered", "Dead"}
	statuses := []Health{Healthy, Infected, Recovered, Dead}
	lines := make([]chart.Series, len(names))
	for i := range names {
		col := StatusColor(statuses[i])
		lines[i] = chart.ContinuousSeries{
			Name:    names[i],
			XValues: ticks,
			YValues: series[i],
			Style: chart.Style{
				StrokeColor: drawing.Color{R: col.R, G: col.G, B: col.B, A: 255},
				StrokeWidth: 2,
			},
		}
	}

	graph := chart.Chart{
		Width:  960,
		Height: 480,
		XAxis: chart.XAxis{
			Name:  "Tick",
			Range: &chart.ContinuousRange{Min: float64(first), Max: float64(last)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Individuals",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak)},
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
