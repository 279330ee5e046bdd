package colormap

import (
	"fmt"
	"image/color"
	"math"
	"sort"
)

// Palette is an ordered list of control colors spread evenly over [0, 1].
type Palette []color.RGBA

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Built-in palettes.
var (
	Jet = Palette{
		rgb(0, 0, 255), rgb(0, 255, 255), rgb(255, 255, 0), rgb(255, 0, 0), rgb(50, 0, 0),
	}
	Classic = Palette{
		rgb(30, 77, 203), rgb(25, 60, 192), rgb(45, 117, 220), rgb(204, 108, 191), rgb(196, 57, 178), rgb(198, 33, 24),
	}
	WhiteToBlack = Palette{rgb(255, 255, 255), rgb(0, 0, 0)}
	BlackToWhite = Palette{rgb(0, 0, 0), rgb(255, 255, 255)}
	Bio          = Palette{
		rgb(0, 0, 204), rgb(204, 230, 255), rgb(255, 255, 153), rgb(170, 255, 128), rgb(0, 153, 0), rgb(230, 242, 255),
	}
	Cold = Palette{
		rgb(230, 247, 255), rgb(0, 92, 230), rgb(0, 179, 179), rgb(0, 51, 153), rgb(0, 5, 15),
	}
	Warm = Palette{
		rgb(255, 255, 230), rgb(255, 204, 0), rgb(255, 136, 77), rgb(255, 51, 0), rgb(128, 0, 0), rgb(10, 0, 0),
	}
	Hue = Palette{
		rgb(255, 0, 0), rgb(255, 255, 0), rgb(0, 255, 0), rgb(0, 255, 255), rgb(0, 0, 255), rgb(255, 0, 255), rgb(255, 0, 0),
	}
)

var palettes = map[string]Palette{
	"jet":            Jet,
	"classic":        Classic,
	"white-to-black": WhiteToBlack,
	"black-to-white": BlackToWhite,
	"bio":            Bio,
	"cold":           Cold,
	"warm":           Warm,
	"hue":            Hue,
}

// PaletteByName returns a built-in palette.
func PaletteByName(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("colormap: unknown palette %q", name)
	}
	return p, nil
}

// PaletteNames lists the built-in palettes in alphabetical order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At interpolates the palette at t. t is clamped to [0, 1].
func (p Palette) At(t float64) color.RGBA {
	switch len(p) {
	case 0:
		return color.RGBA{}
	case 1:
		return p[0]
	}

	if math.IsNaN(t) || t <= 0 {
		return p[0]
	}
	if t >= 1 {
		return p[len(p)-1]
	}

	pos := t * float64(len(p)-1)
	i := int(pos)
	frac := pos - float64(i)
	c1, c2 := p[i], p[i+1]
	return color.RGBA{
		R: lerp(c1.R, c2.R, frac),
		G: lerp(c1.G, c2.G, frac),
		B: lerp(c1.B, c2.B, frac),
		A: lerp(c1.A, c2.A, frac),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// Linear builds a table with maxValue+1 entries that spreads p over
// [minValue, maxValue]. Entry 0 stays transparent black since a zero depth
// sample carries no measurement; samples below minValue take the first color.
func Linear(p Palette, minValue, maxValue uint16) Table {
	t := NewTable(int(maxValue) + 1)
	if minValue > maxValue {
		minValue = maxValue
	}
	span := float64(maxValue - minValue)
	for v := 1; v < len(t); v++ {
		if v <= int(minValue) || span == 0 {
			t[v] = p.At(0)
			continue
		}
		t[v] = p.At(float64(v-int(minValue)) / span)
	}
	return t
}
