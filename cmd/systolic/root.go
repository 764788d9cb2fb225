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

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/go-systolic/internal/config"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}
	root := &cobra.Command{
		Use:           "systolic",
		Short:         "Cycle-accurate systolic array matrix multiply simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML settings file")
	root.PersistentFlags().String("log-level", a.cfg.LogLevel, "log level (debug|info|warn|error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.load(cmd)
	}

	root.AddCommand(newMultiplyCmd(a), newScheduleCmd(a), newInfoCmd())
	return root
}

// load reads --config, overlays explicitly set flags and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	flags := cmd.Flags()
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = a.apply(flags, f.Name)
	})
	if err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	level, _ := a.cfg.Level()
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) apply(flags *pflag.FlagSet, name string) error {
	var err error
	switch name {
	case "size":
		a.cfg.Size, err = flags.GetInt(name)
	case "seed":
		a.cfg.Seed, err = flags.GetInt64(name)
	case "max":
		a.cfg.MaxValue, err = flags.GetInt64(name)
	case "strategy":
		a.cfg.Strategy, err = flags.GetString(name)
	case "workers":
		a.cfg.Workers, err = flags.GetInt(name)
	case "trace":
		a.cfg.Trace, err = flags.GetBool(name)
	case "no-verify":
		var off bool
		off, err = flags.GetBool(name)
		a.cfg.Verify = !off
	case "log-level":
		a.cfg.LogLevel, err = flags.GetString(name)
	}
	return err
}

func addSizeFlag(flags *pflag.FlagSet, def config.Config) {
	flags.Int("size", def.Size, "matrix dimension N (>= 2)")
}

// addGridFlags registers the flags of commands that build random matrices.
func addGridFlags(flags *pflag.FlagSet, def config.Config) {
	addSizeFlag(flags, def)
	flags.Int64("seed", def.Seed, "random seed, 0 for time-based")
	flags.Int64("max", def.MaxValue, "operands are drawn from [0, max)")
}
