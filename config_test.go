// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func baseConfig() Config {
	return Config{
		NGroups: 2,
		Np:      4,
		NIter:   10,
		Bounds:  Bounds{{Lo: -10, Hi: 10}},
	}
}

func TestConfigValidateGood(t *testing.T) {
	cfg := baseConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateCatchesBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"NpTooSmall", func(c *Config) { c.Np = 3 }, "Np"},
		{"NGroupsZero", func(c *Config) { c.NGroups = 0 }, "NGroups"},
		{"MigrationNeedsTwoGroups", func(c *Config) { c.NGroups = 1; c.MigrationProb = 0.1; c.MigrationInterval = 1 }, "NGroups"},
		{"NIterZero", func(c *Config) { c.NIter = 0 }, "NIter"},
		{"NInitialNegative", func(c *Config) { c.NInitial = -1 }, "NInitial"},
		{"BurninNegative", func(c *Config) { c.Burnin = -1 }, "Burnin"},
		{"EmptyBounds", func(c *Config) { c.Bounds = nil }, "Bounds"},
		{"CrossoverOutOfRange", func(c *Config) { c.CrossoverProb = 1.5 }, "CrossoverProb"},
		{"MigrationProbOutOfRange", func(c *Config) { c.MigrationProb = -0.1 }, "MigrationProb"},
		{"SnookerOutOfRange", func(c *Config) { c.SnookerProb = 2 }, "SnookerProb"},
		{"MigrationIntervalMissing", func(c *Config) { c.MigrationProb = 0.5 }, "MigrationInterval"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := baseConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			cfgErr, ok := err.(*ConfigError)
			require.Truef(t, ok, "Validate() error type = %T, want *ConfigError", err)
			require.Equal(t, c.field, cfgErr.Field)
		})
	}
}

func TestJitterScaleDefault(t *testing.T) {
	cfg := baseConfig()
	if got, want := cfg.jitterScale(), 1e-3; got != want {
		t.Errorf("jitterScale() = %v, want %v", got, want)
	}
	cfg.JitterScale = 0.25
	if got, want := cfg.jitterScale(), 0.25; got != want {
		t.Errorf("jitterScale() = %v, want %v", got, want)
	}
}

func TestBlockForCyclesRoundRobin(t *testing.T) {
	cfg := baseConfig()
	if cfg.blockFor(1) != nil {
		t.Fatalf("blockFor() with no blocking configured, want nil")
	}
	cfg.Blocking = []Block{{true, false}, {false, true}}
	if got := cfg.blockFor(1); !got[0] || got[1] {
		t.Errorf("blockFor(1) = %v, want [true false]", got)
	}
	if got := cfg.blockFor(2); got[0] || !got[1] {
		t.Errorf("blockFor(2) = %v, want [false true]", got)
	}
	if got := cfg.blockFor(3); !got[0] || got[1] {
		t.Errorf("blockFor(3) = %v, want [true false] (wrapped)", got)
	}
}

func TestGammaPolicyString(t *testing.T) {
	cases := map[GammaPolicy]string{GammaFixed: "fixed", GammaVariable: "variable", GammaRandom: "random"}
	for policy, want := range cases {
		if got := policy.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", policy, got, want)
		}
	}
}

func TestUpdateRuleString(t *testing.T) {
	cases := map[UpdateRule]string{UpdateMH: "mh", UpdateMaximize: "maximize", UpdateMinimize: "minimize"}
	for rule, want := range cases {
		if got := rule.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", rule, got, want)
		}
	}
}
