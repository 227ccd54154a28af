// Package config loads graphalign settings from TOML files.
//
// A configuration file may set any subset of the keys; everything else keeps
// the value from [Default]:
//
//	[scoring]
//	match = 2
//	mismatch = -1
//	gap_open = -3
//	gap_extend = -1
//	alphabet = "ACGT"
//
//	[pipeline]
//	workers = 4
//
//	[minimize]
//	k = 15
//	w = 25
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphalign/pkg/align"
	"github.com/matzehuels/graphalign/pkg/cache"
	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the complete set of tunables.
type Config struct {
	Scoring  Scoring  `toml:"scoring"`
	Pipeline Pipeline `toml:"pipeline"`
	Minimize Minimize `toml:"minimize"`
	Cache    Cache    `toml:"cache"`
}

// Scoring mirrors [align.Scoring] with the alphabet given as its letters.
type Scoring struct {
	Match     int    `toml:"match"`
	Mismatch  int    `toml:"mismatch"`
	GapOpen   int    `toml:"gap_open"`
	GapExtend int    `toml:"gap_extend"`
	Alphabet  string `toml:"alphabet"`
}

// Pipeline controls graph construction.
type Pipeline struct {
	// Workers bounds concurrent alignments in batch scoring; 0 means no
	// limit.
	Workers int  `toml:"workers"`
	Refresh bool `toml:"refresh"`
}

// Minimize holds the default minimizer parameters.
type Minimize struct {
	K int `toml:"k"`
	W int `toml:"w"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"` // file backend; empty means the user cache dir
	Redis   Redis  `toml:"redis"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	Namespace string `toml:"namespace"`
}

// Default returns the built-in configuration.
func Default() Config {
	s := align.DefaultScoring()
	return Config{
		Scoring: Scoring{
			Match:     s.Match,
			Mismatch:  s.Mismatch,
			GapOpen:   s.GapOpen,
			GapExtend: s.GapExtend,
			Alphabet:  s.Alphabet.Letters(),
		},
		Minimize: Minimize{K: 15, W: 25},
		Cache: Cache{
			Backend: BackendFile,
			Redis: Redis{
				Addr:      "localhost:6379",
				Namespace: cache.DefaultRedisNamespace,
			},
		},
	}
}

// Load reads and validates the TOML file at path on top of [Default].
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := c.Scoring.Build(); err != nil {
		return err
	}
	if c.Pipeline.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "pipeline.workers must be non-negative, got %d", c.Pipeline.Workers)
	}
	if c.Minimize.K < 1 || c.Minimize.W < c.Minimize.K {
		return errs.New(errs.ErrCodeInvalidConfig, "minimize needs 1 <= k <= w, got k=%d w=%d", c.Minimize.K, c.Minimize.W)
	}
	if !slices.Contains([]string{BackendNone, BackendFile, BackendRedis}, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Redis.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
	}
	return nil
}

// Build converts the section into a validated [align.Scoring].
func (s Scoring) Build() (align.Scoring, error) {
	alpha, err := seqgraph.NewAlphabet(s.Alphabet)
	if err != nil {
		return align.Scoring{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "scoring.alphabet")
	}
	out := align.Scoring{
		Match:     s.Match,
		Mismatch:  s.Mismatch,
		GapOpen:   s.GapOpen,
		GapExtend: s.GapExtend,
		Alphabet:  alpha,
	}
	if err := out.Validate(); err != nil {
		return align.Scoring{}, err
	}
	return out, nil
}

// RedisConfig converts the redis section for [cache.NewRedisCache].
func (r Redis) RedisConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:      r.Addr,
		Password:  r.Password,
		DB:        r.DB,
		Namespace: r.Namespace,
	}
}
