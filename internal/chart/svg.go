package chart

import (
	"fmt"
	"strings"

	"github.com/san-kum/qwalk/internal/walk"
)

const (
	svgMarginLeft   = 60.0
	svgMarginRight  = 20.0
	svgMarginTop    = 40.0
	svgMarginBottom = 45.0
)

// SVG renders d as a standalone line chart with titled axes.
func SVG(d *walk.Distribution, width, height int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="Lato, sans-serif">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height)

	var kind walk.Kind
	if !d.Empty() {
		kind = d.Kind
	}
	fmt.Fprintf(&sb, `<text x="%.1f" y="24" font-size="16" text-anchor="start">%s</text>
`, float64(width)*0.05, TitleFor(kind))

	plotW := float64(width) - svgMarginLeft - svgMarginRight
	plotH := float64(height) - svgMarginTop - svgMarginBottom
	x0, y0 := svgMarginLeft, svgMarginTop+plotH

	fmt.Fprintf(&sb, `<g stroke="#444466" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, x0, y0, x0+plotW, y0, x0, y0, x0, svgMarginTop)
	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle">Step</text>
<text x="14" y="%.1f" font-size="12" text-anchor="middle" transform="rotate(-90 14 %.1f)">Probability</text>
`, x0+plotW/2, float64(height)-8, svgMarginTop+plotH/2, svgMarginTop+plotH/2)

	if d.Len() < 2 {
		sb.WriteString("</svg>")
		return sb.String()
	}

	minX, maxX := float64(d.Positions[0]), float64(d.Positions[d.Len()-1])
	maxY := 0.0
	for _, p := range d.Probabilities {
		if p > maxY {
			maxY = p
		}
	}
	if maxY == 0 {
		maxY = 1
	}
	maxY *= 1.1
	rangeX := maxX - minX

	fmt.Fprintf(&sb, `<g font-size="10" fill="#666688">
<text x="%.1f" y="%.1f" text-anchor="middle">%d</text>
<text x="%.1f" y="%.1f" text-anchor="middle">%d</text>
<text x="%.1f" y="%.1f" text-anchor="end">%.3f</text>
</g>
`, x0, y0+14, d.Positions[0], x0+plotW, y0+14, d.Positions[d.Len()-1], x0-4, svgMarginTop+4, maxY)

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, Color)
	for i, pos := range d.Positions {
		x := x0 + (float64(pos)-minX)/rangeX*plotW
		y := y0 - d.Probabilities[i]/maxY*plotH
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
