package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/qwalk/internal/walk"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.MediumSeaGreen,
	asciigraph.Orange,
	asciigraph.DeepSkyBlue,
}

// ASCII plots the probabilities of d over a contiguous position axis.
func ASCII(d *walk.Distribution, width, height int) string {
	if d.Empty() {
		return "no data"
	}
	dense := d.Dense()
	caption := fmt.Sprintf("%s  (positions %d..%d)", TitleFor(d.Kind), dense.Positions[0], dense.Positions[dense.Len()-1])
	return asciigraph.Plot(dense.Probabilities, plotOptions(dense.Len(), width, height, caption)...)
}

// Compare overlays several distributions on their union position range.
func Compare(width, height int, ds ...*walk.Distribution) string {
	lo, hi, ok := span(ds)
	if !ok {
		return "no data"
	}
	series := make([][]float64, 0, len(ds))
	legends := make([]string, 0, len(ds))
	for _, d := range ds {
		if d.Empty() {
			continue
		}
		ys := make([]float64, hi-lo+1)
		for i, pos := range d.Positions {
			ys[pos-lo] = d.Probabilities[i]
		}
		series = append(series, ys)
		legends = append(legends, d.Kind.Title())
	}

	opts := plotOptions(hi-lo+1, width, height, fmt.Sprintf("positions %d..%d", lo, hi))
	opts = append(opts,
		asciigraph.SeriesColors(seriesColors[:min(len(series), len(seriesColors))]...),
		asciigraph.SeriesLegends(legends...),
	)
	return asciigraph.PlotMany(series, opts...)
}

func plotOptions(n, width, height int, caption string) []asciigraph.Option {
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(3),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
	}
	// asciigraph interpolates to Width, which needs at least two points.
	if n > 1 && width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return opts
}

func span(ds []*walk.Distribution) (lo, hi int, ok bool) {
	for _, d := range ds {
		if d.Empty() {
			continue
		}
		first, last := d.Positions[0], d.Positions[d.Len()-1]
		if !ok || first < lo {
			lo = first
		}
		if !ok || last > hi {
			hi = last
		}
		ok = true
	}
	return lo, hi, ok
}
