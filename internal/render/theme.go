package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnknownTheme is returned by LookupTheme.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is a named color scheme.
type Theme struct {
	Name       string
	Background drawing.Color
	Canvas     drawing.Color
	Text       drawing.Color
	Axis       drawing.Color
	Palette    []drawing.Color
}

var themes = map[string]Theme{
	"default": {
		Name:       "default",
		Background: drawing.ColorWhite,
		Canvas:     drawing.ColorWhite,
		Text:       drawing.ColorFromHex("333333"),
		Axis:       drawing.ColorFromHex("666666"),
		Palette:    hexes("1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd", "8c564b"),
	},
	"minimal": {
		Name:       "minimal",
		Background: drawing.ColorWhite,
		Canvas:     drawing.ColorWhite,
		Text:       drawing.ColorFromHex("444444"),
		Axis:       drawing.ColorFromHex("bbbbbb"),
		Palette:    hexes("555555", "888888", "aaaaaa"),
	},
	"dark": {
		Name:       "dark",
		Background: drawing.ColorFromHex("1e1e1e"),
		Canvas:     drawing.ColorFromHex("2b2b2b"),
		Text:       drawing.ColorFromHex("e0e0e0"),
		Axis:       drawing.ColorFromHex("9e9e9e"),
		Palette:    hexes("4fc3f7", "ffb74d", "81c784", "e57373", "ba68c8"),
	},
	"colorful": {
		Name:       "colorful",
		Background: drawing.ColorFromHex("fffdf7"),
		Canvas:     drawing.ColorWhite,
		Text:       drawing.ColorFromHex("222222"),
		Axis:       drawing.ColorFromHex("555555"),
		Palette:    hexes("e6194b", "3cb44b", "4363d8", "f58231", "911eb4", "42d4f4", "f032e6", "bfef45"),
	},
}

func hexes(hs ...string) []drawing.Color {
	out := make([]drawing.Color, len(hs))
	for i, h := range hs {
		out[i] = drawing.ColorFromHex(h)
	}
	return out
}

// DefaultTheme returns the "default" theme.
func DefaultTheme() Theme { return themes["default"] }

// ThemeNames lists the available theme names, sorted.
func ThemeNames() []string {
	out := make([]string, 0, len(themes))
	for k := range themes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LookupTheme returns the named theme (case-insensitive).
func LookupTheme(name string) (Theme, error) {
	th, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q (use %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), "|"))
	}
	return th, nil
}

func (th Theme) color(i int) drawing.Color {
	if len(th.Palette) == 0 {
		return chart.ColorBlue
	}
	return th.Palette[i%len(th.Palette)]
}

func (th Theme) background() chart.Style {
	return chart.Style{FillColor: th.Background, Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}}
}

func (th Theme) canvas() chart.Style { return chart.Style{FillColor: th.Canvas} }

func (th Theme) title() chart.Style { return chart.Style{FontColor: th.Text} }

func (th Theme) axis() chart.Style {
	return chart.Style{FontColor: th.Text, StrokeColor: th.Axis}
}
