package walk

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindQuantum Kind = "quantum"
	KindRandom  Kind = "random"
)

// ParseKind accepts kind names case-insensitively ("Quantum", "random").
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindQuantum:
		return KindQuantum, nil
	case KindRandom:
		return KindRandom, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWalk, s)
}

// Title is the display name used in chart titles.
func (k Kind) Title() string {
	switch k {
	case KindQuantum:
		return "Quantum"
	case KindRandom:
		return "Random"
	}
	return ""
}

// Coin is the initial state of the quantum coin qubit.
type Coin string

const (
	CoinZero      Coin = "0"
	CoinOne       Coin = "1"
	CoinSymmetric Coin = "symmetric"
)

func ParseCoin(s string) (Coin, error) {
	switch Coin(strings.ToLower(strings.TrimSpace(s))) {
	case CoinZero:
		return CoinZero, nil
	case CoinOne:
		return CoinOne, nil
	case CoinSymmetric:
		return CoinSymmetric, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCoin, s)
}

const (
	MinQubits = 3
	MaxQubits = 10
	MinSteps  = 1
	MaxSteps  = 100

	DefaultQubits      = 7
	DefaultSteps       = 30
	DefaultRepetitions = 5000
	DefaultBias        = 0.5
)

// Params configures one walk. Quantum walks use Qubits and Coin; random walks
// use Bias. Start overrides the initial position when non-nil.
type Params struct {
	Kind        Kind
	Qubits      int
	Steps       int
	Repetitions int
	Coin        Coin
	Bias        float64
	Start       *int
	Seed        uint64
}

func DefaultParams() Params {
	return Params{
		Kind:        KindQuantum,
		Qubits:      DefaultQubits,
		Steps:       DefaultSteps,
		Repetitions: DefaultRepetitions,
		Coin:        CoinOne,
		Bias:        DefaultBias,
	}
}

// Validate checks the parameters used by p.Kind.
func (p Params) Validate() error {
	switch p.Kind {
	case KindQuantum:
		return p.validateQuantum()
	case KindRandom:
		return p.validateRandom()
	}
	return fmt.Errorf("%w: %q", ErrUnknownWalk, p.Kind)
}

func (p Params) validateQuantum() error {
	if p.Qubits < MinQubits || p.Qubits > MaxQubits {
		return &ParamError{Kind: KindQuantum, Param: "qubits", Value: p.Qubits, Min: MinQubits, Max: MaxQubits}
	}
	if p.Steps < MinSteps || p.Steps > MaxSteps {
		return &ParamError{Kind: KindQuantum, Param: "steps", Value: p.Steps, Min: MinSteps, Max: MaxSteps}
	}
	if p.Repetitions < 1 {
		return &ParamError{Kind: KindQuantum, Param: "repetitions", Value: p.Repetitions, Min: 1, Max: "inf"}
	}
	if _, err := ParseCoin(string(p.Coin)); err != nil {
		return err
	}
	if p.Start != nil {
		if limit := MaxPosition(p.Qubits - 1); *p.Start < 0 || *p.Start > limit {
			return &ParamError{Kind: KindQuantum, Param: "start", Value: *p.Start, Min: 0, Max: limit}
		}
	}
	return nil
}

func (p Params) validateRandom() error {
	if p.Steps < MinSteps || p.Steps > MaxSteps {
		return &ParamError{Kind: KindRandom, Param: "steps", Value: p.Steps, Min: MinSteps, Max: MaxSteps}
	}
	if p.Repetitions < 1 {
		return &ParamError{Kind: KindRandom, Param: "repetitions", Value: p.Repetitions, Min: 1, Max: "inf"}
	}
	if !(p.Bias >= 0 && p.Bias <= 1) {
		return &ParamError{Kind: KindRandom, Param: "bias", Value: p.Bias, Min: 0, Max: 1}
	}
	return nil
}
