package config

import "sort"

var Presets = map[string]map[string]*Config{
	"quantum": {
		"default": {
			Walk: "quantum", Qubits: 7, Steps: 30, Repetitions: 5000, Coin: "1",
		},
		"zero": {
			Walk: "quantum", Qubits: 7, Steps: 30, Repetitions: 5000, Coin: "0",
		},
		"symmetric": {
			Walk: "quantum", Qubits: 7, Steps: 30, Repetitions: 5000, Coin: "symmetric",
		},
		"wide": {
			Walk: "quantum", Qubits: 10, Steps: 100, Repetitions: 10000, Coin: "symmetric",
		},
		"tiny": {
			Walk: "quantum", Qubits: 3, Steps: 4, Repetitions: 5000, Coin: "1",
		},
	},
	"random": {
		"default": {
			Walk: "random", Steps: 30, Repetitions: 5000, Bias: 0.5,
		},
		"biased": {
			Walk: "random", Steps: 30, Repetitions: 5000, Bias: 0.7,
		},
		"long": {
			Walk: "random", Steps: 100, Repetitions: 10000, Bias: 0.5,
		},
	},
}

func GetPreset(walk, preset string) *Config {
	walkPresets, ok := Presets[walk]
	if !ok {
		return nil
	}
	cfg, ok := walkPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(walk string) []string {
	walkPresets, ok := Presets[walk]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(walkPresets))
	for name := range walkPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
