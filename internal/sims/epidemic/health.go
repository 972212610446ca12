package epidemic

// Health enumerates the epidemiological state of a lattice position.
type Health uint8

const (
	Empty Health = iota
	Healthy
	Infected
	Recovered
	Dead

	healthCount
)

var healthNames = [...]string{
	Empty:     "empty",
	Healthy:   "healthy",
	Infected:  "infected",
	Recovered: "recovered",
	Dead:      "dead",
}

func (h Health) String() string {
	if h < healthCount {
		return healthNames[h]
	}
	return "unknown"
}

// Valid reports whether h is one of the defined states.
func (h Health) Valid() bool { return h < healthCount }

// Cell is one individual: a health status plus the number of ticks it has
// been infected. Age is zero whenever Status is not Infected.
type Cell struct {
	Status Health
	Age    int
}
