package dashboard

import (
	"strconv"

	"github.com/san-kum/qwalk/internal/walk"
)

const (
	minRepetitions  = 5000
	maxRepetitions  = 10000
	repetitionsStep = 500
)

// Control is one input of the dashboard menu: a dropdown over Options, or a
// slider over [Min, Max] in increments of Step. Value is the option index for
// dropdowns and the slider value otherwise.
type Control struct {
	Label   string
	Options []string
	Min     int
	Max     int
	Step    int
	Value   int
}

func dropdown(label string, selected int, options ...string) Control {
	return Control{Label: label, Options: options, Max: len(options) - 1, Step: 1, Value: selected}
}

func slider(label string, lo, hi, step, value int) Control {
	c := Control{Label: label, Min: lo, Max: hi, Step: step}
	c.Set(value)
	return c
}

func (c *Control) IsDropdown() bool { return len(c.Options) > 0 }

// Set clamps v into range and snaps it onto the step grid.
func (c *Control) Set(v int) {
	v = max(c.Min, min(c.Max, v))
	if c.Step > 1 {
		v = c.Min + (v-c.Min+c.Step/2)/c.Step*c.Step
		if v > c.Max {
			v -= c.Step
		}
	}
	c.Value = v
}

// Inc moves one step up and reports whether the value changed.
func (c *Control) Inc() bool {
	if c.Value+c.Step > c.Max {
		return false
	}
	c.Value += c.Step
	return true
}

// Dec moves one step down and reports whether the value changed.
func (c *Control) Dec() bool {
	if c.Value-c.Step < c.Min {
		return false
	}
	c.Value -= c.Step
	return true
}

func (c *Control) String() string {
	if c.IsDropdown() {
		return c.Options[c.Value]
	}
	return strconv.Itoa(c.Value)
}

// Indices of the dashboard controls, in menu order.
const (
	ctrlType = iota
	ctrlCoin
	ctrlQubits
	ctrlSteps
	ctrlRepetitions
)

var (
	typeOptions = []string{"Random", "Quantum"}
	coinOptions = []string{"0", "1", "Symmetric"}
)

// newControls lays out the menu with values taken from p, clamped to the
// dashboard ranges.
func newControls(p walk.Params) []Control {
	typeIdx := 1
	if p.Kind == walk.KindRandom {
		typeIdx = 0
	}
	coinIdx := 1
	switch p.Coin {
	case walk.CoinZero:
		coinIdx = 0
	case walk.CoinSymmetric:
		coinIdx = 2
	}
	return []Control{
		ctrlType:        dropdown("Type", typeIdx, typeOptions...),
		ctrlCoin:        dropdown("Coin", coinIdx, coinOptions...),
		ctrlQubits:      slider("Qubits", walk.MinQubits, walk.MaxQubits, 1, orDefault(p.Qubits, walk.DefaultQubits)),
		ctrlSteps:       slider("Steps", walk.MinSteps, walk.MaxSteps, 1, orDefault(p.Steps, walk.DefaultSteps)),
		ctrlRepetitions: slider("Repetitions", minRepetitions, maxRepetitions, repetitionsStep, orDefault(p.Repetitions, walk.DefaultRepetitions)),
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// paramsFrom reads walk parameters off the controls. Settings the controls do
// not expose (bias, start, seed) come from base.
func paramsFrom(controls []Control, base walk.Params) walk.Params {
	p := base
	p.Kind, _ = walk.ParseKind(controls[ctrlType].String())
	p.Coin, _ = walk.ParseCoin(controls[ctrlCoin].String())
	p.Qubits = controls[ctrlQubits].Value
	p.Steps = controls[ctrlSteps].Value
	p.Repetitions = controls[ctrlRepetitions].Value
	// A quantum start position can fall off a register that just shrank.
	if p.Kind == walk.KindQuantum && p.Start != nil && *p.Start > walk.MaxPosition(p.Qubits-1) {
		p.Start = nil
	}
	return p
}

// applies reports whether control i affects walks of kind k.
func applies(i int, k walk.Kind) bool {
	if k == walk.KindRandom {
		return i != ctrlCoin && i != ctrlQubits
	}
	return true
}
