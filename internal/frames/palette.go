package frames

import (
	"fmt"
	"math"
	"math/rand"
)

var baseColors = []string{
	"#ff5252", "#40c4ff", "#69f0ae", "#ffd740",
	"#e040fb", "#ff6e40", "#64ffda", "#eeff41",
}

// Palette hands out point colours: the base colours first, then random hues
// from the seeded source so a given seed always yields the same sequence.
type Palette struct {
	rng  *rand.Rand
	used int
}

func NewPalette(seed int64) *Palette {
	return &Palette{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next colour as #rrggbb.
func (p *Palette) Next() string {
	if p.used < len(baseColors) {
		c := baseColors[p.used]
		p.used++
		return c
	}
	p.used++
	return hslHex(p.rng.Float64()*360, 0.75, 0.6)
}

func hslHex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	to8 := func(v float64) int { return int(math.Round((v + m) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", to8(r), to8(g), to8(b))
}
