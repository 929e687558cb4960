// Package config holds the engine settings shared by the command line tools.
//
// Settings come from three layers, later ones winning:
//
//	Default()  →  TOML file (Load)  →  command line flags
//
// Example file:
//
//	[log]
//	level  = "debug"
//	format = "json"
//
//	[kmeans]
//	max_iter = 200
//
//	[symnmf]
//	seed     = 1234
//	max_iter = 300
//
//	[runtime]
//	workers = 4
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidConfig indicates a setting outside its allowed range.
var ErrInvalidConfig = errors.New("config: invalid value")

// Log configures the zap logger.
type Log struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
}

// KMeans configures the k-means engine.
type KMeans struct {
	MaxIter int     `toml:"max_iter"` // ≤ 0 selects the engine default; > 1000 is clamped
	Epsilon float64 `toml:"epsilon"`
}

// SymNMF configures the factorization engine.
type SymNMF struct {
	Seed    int64   `toml:"seed"`
	MaxIter int     `toml:"max_iter"`
	Epsilon float64 `toml:"epsilon"`
	Delta   float64 `toml:"delta"`
}

// Runtime configures execution resources.
type Runtime struct {
	Workers int `toml:"workers"` // row-block workers for the n-row products
}

// Config is the full settings tree.
type Config struct {
	Log     Log     `toml:"log"`
	KMeans  KMeans  `toml:"kmeans"`
	SymNMF  SymNMF  `toml:"symnmf"`
	Runtime Runtime `toml:"runtime"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Log:     Log{Level: "info", Format: "console"},
		KMeans:  KMeans{MaxIter: 200, Epsilon: 1e-4},
		SymNMF:  SymNMF{Seed: 1234, MaxIter: 300, Epsilon: 1e-4, Delta: 1e-10},
		Runtime: Runtime{Workers: 1},
	}
}

// Load decodes the TOML file at path over Default() and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: %s: unknown key %q: %w", path, undecoded[0].String(), ErrInvalidConfig)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every setting against its allowed range.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level %q: %w", c.Log.Level, ErrInvalidConfig)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("config: log.format %q: %w", c.Log.Format, ErrInvalidConfig)
	}
	if !positive(c.KMeans.Epsilon) {
		return fmt.Errorf("config: kmeans.epsilon %g: %w", c.KMeans.Epsilon, ErrInvalidConfig)
	}
	if c.SymNMF.MaxIter < 1 {
		return fmt.Errorf("config: symnmf.max_iter %d: %w", c.SymNMF.MaxIter, ErrInvalidConfig)
	}
	if !positive(c.SymNMF.Epsilon) {
		return fmt.Errorf("config: symnmf.epsilon %g: %w", c.SymNMF.Epsilon, ErrInvalidConfig)
	}
	if !positive(c.SymNMF.Delta) {
		return fmt.Errorf("config: symnmf.delta %g: %w", c.SymNMF.Delta, ErrInvalidConfig)
	}
	if c.Runtime.Workers < 1 {
		return fmt.Errorf("config: runtime.workers %d: %w", c.Runtime.Workers, ErrInvalidConfig)
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
