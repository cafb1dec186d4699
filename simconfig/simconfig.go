// Package simconfig loads simulation run parameters from YAML so that runs
// can be described in files and replayed exactly.
package simconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/airmarket-io/airmarket/sim"
)

// Criterion names accepted in StopConfig.Criterion.
const (
	CriterionNoAgents      = "no_agents"
	CriterionTimeThreshold = "time_threshold"
)

// StopConfig selects the global stop criterion. T is only read for
// time_threshold.
type StopConfig struct {
	Criterion string `yaml:"criterion"`
	T         uint64 `yaml:"t"`
}

// RunConfig is the on-disk description of one simulation run. Absent fields
// keep the engine defaults: nondeterministic seed, unbounded look-ahead,
// no_agents termination.
type RunConfig struct {
	Seed       *int64     `yaml:"seed"`
	TimeWindow *uint64    `yaml:"time_window"`
	Stop       StopConfig `yaml:"stop"`
}

// Load reads and parses a run configuration file.
func Load(path string) (RunConfig, error) {
	var c RunConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("run config %s: %w", path, err)
	}
	return c, nil
}

// StopCriterion maps the configured criterion name onto the sim variant.
// An empty name selects the engine default.
func (c RunConfig) StopCriterion() (sim.StopCriterion, error) {
	switch c.Stop.Criterion {
	case "", CriterionNoAgents:
		return sim.NoAgents{}, nil
	case CriterionTimeThreshold:
		return sim.TimeThreshold{T: c.Stop.T}, nil
	default:
		return nil, fmt.Errorf("unknown stop criterion %q", c.Stop.Criterion)
	}
}

// Configure applies the run configuration onto opts, leaving callback
// fields untouched.
func Configure[R comparable](opts *sim.Options[R], c RunConfig) error {
	criterion, err := c.StopCriterion()
	if err != nil {
		return err
	}
	opts.Seed = c.Seed
	opts.TimeWindow = c.TimeWindow
	opts.Stop = criterion
	return nil
}
