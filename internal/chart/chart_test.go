package chart

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/qwalk/internal/walk"
)

func sample() *walk.Distribution {
	return walk.FromCounts(walk.KindQuantum, map[int]int{3: 1, 5: 2, 6: 1})
}

func TestNewFigure(t *testing.T) {
	fig := NewFigure(sample())

	if fig.Layout.Title.Text != "Result for a Quantum Walk" {
		t.Errorf("unexpected title %q", fig.Layout.Title.Text)
	}
	if len(fig.Data) != 1 || len(fig.Data[0].X) != 3 {
		t.Fatalf("expected one trace with 3 points, got %+v", fig.Data)
	}
	if fig.Data[0].Y[1] != 0.5 {
		t.Errorf("expected 0.5 at position 5, got %f", fig.Data[0].Y[1])
	}

	raw, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, want := range []string{`"type":"lines"`, `"fixedrange":true`, `"colorway":["#17B897"]`, `"xanchor":"left"`, `"title":"Probability"`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("expected %s in %s", want, raw)
		}
	}
}

func TestNewFigureEmpty(t *testing.T) {
	fig := NewFigure(nil)

	if fig.Layout.Title.Text != "Result for a  Walk" {
		t.Errorf("unexpected title %q", fig.Layout.Title.Text)
	}
	raw, _ := json.Marshal(fig)
	if !strings.Contains(string(raw), `"x":[],"y":[]`) {
		t.Errorf("expected empty arrays, got %s", raw)
	}
}

func TestASCII(t *testing.T) {
	out := ASCII(sample(), 40, 8)
	if !strings.Contains(out, "positions 3..6") {
		t.Errorf("expected caption with position range, got\n%s", out)
	}
	if ASCII(nil, 40, 8) != "no data" {
		t.Error("expected placeholder for empty distribution")
	}

	single := walk.FromCounts(walk.KindRandom, map[int]int{0: 4})
	if out := ASCII(single, 40, 8); !strings.Contains(out, "Random") {
		t.Errorf("expected single-point chart to render, got\n%s", out)
	}
}

func TestCompare(t *testing.T) {
	random := walk.FromCounts(walk.KindRandom, map[int]int{-2: 1, 0: 2, 2: 1})
	out := Compare(40, 8, sample(), random)

	if !strings.Contains(out, "positions -2..6") {
		t.Errorf("expected union range in caption, got\n%s", out)
	}
	if !strings.Contains(out, "Quantum") || !strings.Contains(out, "Random") {
		t.Errorf("expected legends, got\n%s", out)
	}
	if Compare(40, 8, nil) != "no data" {
		t.Error("expected placeholder when nothing to compare")
	}
}

func TestSVG(t *testing.T) {
	out := SVG(sample(), 640, 400)

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if !strings.Contains(out, `stroke="#17B897"`) {
		t.Error("expected trace color")
	}
	if strings.Count(out, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(out, " L"))
	}

	empty := SVG(nil, 640, 400)
	if strings.Contains(empty, "<path") {
		t.Error("empty chart should have no path")
	}
	if !strings.Contains(empty, "Result for a  Walk") {
		t.Error("empty chart should keep the blank title")
	}
}
