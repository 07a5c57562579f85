package chart

import (
	"github.com/san-kum/qwalk/internal/walk"
)

// Color is the trace color of every chart.
const Color = "#17B897"

type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	X             []int     `json:"x"`
	Y             []float64 `json:"y"`
	Type          string    `json:"type"`
	HoverTemplate string    `json:"hovertemplate"`
}

type Layout struct {
	Title    Title    `json:"title"`
	XAxis    Axis     `json:"xaxis"`
	YAxis    Axis     `json:"yaxis"`
	Colorway []string `json:"colorway"`
}

type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	XAnchor string  `json:"xanchor"`
}

type Axis struct {
	FixedRange bool   `json:"fixedrange"`
	Title      string `json:"title"`
}

// TitleFor returns "Result for a <Kind> Walk"; an empty kind leaves a blank.
func TitleFor(kind walk.Kind) string {
	return "Result for a " + kind.Title() + " Walk"
}

// NewFigure describes d as a single line trace. A nil d yields an empty trace.
func NewFigure(d *walk.Distribution) Figure {
	x, y := []int{}, []float64{}
	var kind walk.Kind
	if !d.Empty() {
		x, y, kind = d.Positions, d.Probabilities, d.Kind
	}
	return Figure{
		Data: []Trace{{
			X:             x,
			Y:             y,
			Type:          "lines",
			HoverTemplate: "%{y:.2f}<extra></extra>",
		}},
		Layout: Layout{
			Title:    Title{Text: TitleFor(kind), X: 0.05, XAnchor: "left"},
			XAxis:    Axis{FixedRange: true, Title: "Step"},
			YAxis:    Axis{FixedRange: true, Title: "Probability"},
			Colorway: []string{Color},
		},
	}
}
