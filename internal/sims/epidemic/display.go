package epidemic

import "image/color"

var epidemicPalette = []color.RGBA{
	Empty:     {R: 219, G: 202, B: 154, A: 255},
	Healthy:   {R: 25, G: 147, B: 51, A: 255},
	Infected:  {R: 255, G: 0, B: 0, A: 255},
	Recovered: {R: 0, G: 145, B: 213, A: 255},
	Dead:      {R: 38, G: 23, B: 18, A: 255},
}

// Palette maps each Health value (the bytes returned by Cells) to a color.
func (s *Simulation) Palette() []color.RGBA {
	return epidemicPalette
}

// StatusColor returns the display color for h.
func StatusColor(h Health) color.RGBA {
	if !h.Valid() {
		return color.RGBA{A: 255}
	}
	return epidemicPalette[h]
}
