// Package config loads transfer configuration for the ltfountain CLI from
// an optional YAML file layered over built-in defaults. No command-line
// flag overrides these values. None of this reaches the lt package, which
// is configured only through explicit constructor arguments.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Transfer holds the parameters needed to run an encode/decode demo
// round trip.
type Transfer struct {
	// K is the number of source blocks to split input into.
	K int `yaml:"k"`
	// BlockSize is the length, in int32 words, of each source block.
	BlockSize int `yaml:"block_size"`
	// MasterSeed, if non-nil, makes the encoder's block seed sequence
	// deterministic. Leave nil to draw fresh OS entropy.
	MasterSeed *uint64 `yaml:"master_seed,omitempty"`
	// LossRate is the fraction of generated blocks the demo transport
	// drops before handing them to the decoder, simulating channel loss.
	LossRate float64 `yaml:"loss_rate"`
	// SolitonC and SolitonDelta tune the Robust Soliton distribution.
	SolitonC     float64 `yaml:"soliton_c"`
	SolitonDelta float64 `yaml:"soliton_delta"`
	// MetricsAddr, if non-empty, serves Prometheus metrics on this
	// address for the duration of a demo run.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// Default returns the built-in defaults used when no config file is given.
func Default() Transfer {
	return Transfer{
		K:            64,
		BlockSize:    16,
		LossRate:     0.1,
		SolitonC:     0.03,
		SolitonDelta: 0.05,
	}
}

// Load reads a Transfer from a YAML file at path, starting from Default()
// so unspecified fields keep their defaults.
func Load(path string) (Transfer, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Transfer{}, errors.Wrapf(err, "config: read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Transfer{}, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, nil
}
