package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/qwalk/internal/walk"
)

const (
	DefaultDataDir  = ".qwalk"
	DefaultAddr     = ":8050"
	DefaultLogLevel = "info"
)

// Environment variables that override file values.
const (
	EnvDataDir  = "QWALK_DATA"
	EnvAddr     = "QWALK_ADDR"
	EnvLogLevel = "QWALK_LOG_LEVEL"
	EnvSeed     = "QWALK_SEED"
)

type Config struct {
	Walk        string  `yaml:"walk"`
	Qubits      int     `yaml:"qubits"`
	Steps       int     `yaml:"steps"`
	Repetitions int     `yaml:"repetitions"`
	Coin        string  `yaml:"coin"`
	Bias        float64 `yaml:"bias"`
	Start       *int    `yaml:"start,omitempty"`
	Seed        uint64  `yaml:"seed"`

	DataDir  string `yaml:"data_dir"`
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Walk:        string(walk.KindQuantum),
		Qubits:      walk.DefaultQubits,
		Steps:       walk.DefaultSteps,
		Repetitions: walk.DefaultRepetitions,
		Coin:        string(walk.CoinOne),
		Bias:        walk.DefaultBias,
		DataDir:     DefaultDataDir,
		Addr:        DefaultAddr,
		LogLevel:    DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Merge(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays the keys present in the YAML file at path onto c.
func (c *Config) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads an optional .env file and applies QWALK_* overrides.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	return nil
}

// Apply overlays the walk settings of other onto c. Zero values are treated
// as unset, so a preset for one walk kind keeps the defaults of the other.
// Runtime settings (data dir, address, log level) are left untouched.
func (c *Config) Apply(other *Config) {
	if other.Walk != "" {
		c.Walk = other.Walk
	}
	if other.Qubits != 0 {
		c.Qubits = other.Qubits
	}
	if other.Steps != 0 {
		c.Steps = other.Steps
	}
	if other.Repetitions != 0 {
		c.Repetitions = other.Repetitions
	}
	if other.Coin != "" {
		c.Coin = other.Coin
	}
	if other.Bias != 0 {
		c.Bias = other.Bias
	}
	if other.Start != nil {
		c.Start = other.Start
	}
	if other.Seed != 0 {
		c.Seed = other.Seed
	}
}

// Params converts the walk settings to validated walk parameters.
func (c *Config) Params() (walk.Params, error) {
	kind, err := walk.ParseKind(c.Walk)
	if err != nil {
		return walk.Params{}, err
	}
	p := walk.Params{
		Kind:        kind,
		Qubits:      c.Qubits,
		Steps:       c.Steps,
		Repetitions: c.Repetitions,
		Bias:        c.Bias,
		Start:       c.Start,
		Seed:        c.Seed,
	}
	if kind == walk.KindQuantum {
		coin, err := walk.ParseCoin(c.Coin)
		if err != nil {
			return walk.Params{}, err
		}
		p.Coin = coin
	}
	if err := p.Validate(); err != nil {
		return walk.Params{}, err
	}
	return p, nil
}

func (c *Config) Validate() error {
	_, err := c.Params()
	return err
}
