// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the settings of the systolic command: the demo
// multiply's size, operand range and seed, plus how the grid is simulated.
// Settings come from an optional YAML file and are overridden by flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-systolic/systolic"
)

// Config is the YAML document read by --config.
//
//	size: 4
//	seed: 7
//	max_value: 10
//	strategy: wavefront
//	workers: 4
//	verify: true
//	trace: false
//	log_level: debug
type Config struct {
	Size     int    `yaml:"size"`
	Seed     int64  `yaml:"seed"` // 0 picks a time-based seed
	MaxValue int64  `yaml:"max_value"`
	Strategy string `yaml:"strategy"`
	Workers  int    `yaml:"workers"` // 0 uses GOMAXPROCS
	Verify   bool   `yaml:"verify"`
	Trace    bool   `yaml:"trace"`
	LogLevel string `yaml:"log_level"`
}

// Default matches the original 4×4 demo with operands in [0, 10).
func Default() Config {
	return Config{
		Size:     4,
		MaxValue: 10,
		Strategy: systolic.StrategySerial.String(),
		Verify:   true,
		LogLevel: "warn",
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over Default. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Size < systolic.MinSize {
		return fmt.Errorf("size %d: %w", c.Size, systolic.ErrInvalidConfiguration)
	}
	if c.MaxValue < 1 {
		return fmt.Errorf("max_value must be positive, got %d", c.MaxValue)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := systolic.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Options translates the grid settings into systolic options.
func (c Config) Options() ([]systolic.Option, error) {
	s, err := systolic.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	return []systolic.Option{systolic.WithStrategy(s), systolic.WithWorkers(c.Workers)}, nil
}
