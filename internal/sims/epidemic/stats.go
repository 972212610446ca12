package epidemic

// ChartWindow is how many recent samples History.Window keeps for live charts.
const ChartWindow = 500

// Counts aggregates the committed grid by health status at one tick. Total
// counts every non-Empty cell.
type Counts struct {
	Tick      int
	Healthy   int
	Infected  int
	Recovered int
	Dead      int
	Total     int
}

// Tally counts g in a single scan.
func Tally(g *Grid, tick int) Counts {
	out := Counts{Tick: tick}
	g.ForEachCell(func(_, _ int, c Cell) {
		switch c.Status {
		case Empty:
			return
		case Healthy:
			out.Healthy++
		case Infected:
			out.Infected++
		case Recovered:
			out.Recovered++
		case Dead:
			out.Dead++
		}
		out.Total++
	})
	return out
}

// History accumulates one Counts sample per recorded tick.
type History struct {
	samples []Counts
}

// Record appends a sample.
func (h *History) Record(c Counts) {
	h.samples = append(h.samples, c)
}

// Len returns the number of recorded samples.
func (h *History) Len() int { return len(h.samples) }

// Samples returns every recorded sample, oldest first. The slice is shared;
// callers must not modify it.
func (h *History) Samples() []Counts { return h.samples }

// Window returns the most recent ChartWindow samples.
func (h *History) Window() []Counts {
	if len(h.samples) <= ChartWindow {
		return h.samples
	}
	return h.samples[len(h.samples)-ChartWindow:]
}

// Last returns the newest sample.
func (h *History) Last() (Counts, bool) {
	if len(h.samples) == 0 {
		return Counts{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Clear drops every sample but keeps the backing storage.
func (h *History) Clear() {
	h.samples = h.samples[:0]
}
