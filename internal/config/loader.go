package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/switch/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, profile+".yaml")
}

// Files lists the paths that feed the given profile, default first.
func (p Paths) Files(profile string) []string {
	if profile == "" {
		return []string{p.DefaultPath()}
	}
	return []string{p.DefaultPath(), p.ProfilePath(profile)}
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile, "$default" for none
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the loader's file layout.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → profile (profile optional).
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	key := profile
	if key == "" {
		key = "$default"
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath(), true)
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile), false) // profile file optional
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		merged = mergeRaw(merged, profCfg)
	}

	l.mu.Lock()
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Load resolves the profile into validated Settings, applying env overrides last.
func (l *Loader) Load(profile string) (Settings, error) {
	raw, err := l.LoadMerged(profile)
	if err != nil {
		return Settings{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return Settings{}, err
	}
	s := Normalize(raw)
	if err := ApplyEnv(&s); err != nil {
		return Settings{}, err
	}
	if err := ValidateSettings(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig.
// Missing optional files return zero cfg, no error.
func readYAML(path string, required bool) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// server
	if b.Server.HTTPAddr != nil {
		out.Server.HTTPAddr = b.Server.HTTPAddr
	}
	if b.Server.GRPCAddr != nil {
		out.Server.GRPCAddr = b.Server.GRPCAddr
	}

	// log
	if b.Log.Level != "" {
		out.Log.Level = b.Log.Level
	}
	if b.Log.Format != "" {
		out.Log.Format = b.Log.Format
	}

	// rng
	if b.RNG.Mode != "" {
		out.RNG.Mode = b.RNG.Mode
	}
	if b.RNG.Seed != nil {
		out.RNG.Seed = b.RNG.Seed
	}

	// simulate
	switch {
	case out.Simulate == nil && b.Simulate != nil:
		c := *b.Simulate
		out.Simulate = &c
	case out.Simulate != nil && b.Simulate != nil:
		c := *out.Simulate
		if b.Simulate.DefaultTrials != nil {
			c.DefaultTrials = b.Simulate.DefaultTrials
		}
		if b.Simulate.MaxTrials != nil {
			c.MaxTrials = b.Simulate.MaxTrials
		}
		out.Simulate = &c
	}

	return out
}

// Normalize fills defaults and flattens a merged RawConfig into Settings.
func Normalize(raw RawConfig) Settings {
	s := Settings{
		HTTPAddr:      DefaultHTTPAddr,
		GRPCAddr:      DefaultGRPCAddr,
		LogLevel:      DefaultLogLevel,
		LogFormat:     FormatJSON,
		RNGMode:       RNGCrypto,
		DefaultTrials: DefaultTrials,
		MaxTrials:     DefaultMaxTrials,
		Version:       raw.Version,
	}
	if raw.Server.HTTPAddr != nil {
		s.HTTPAddr = *raw.Server.HTTPAddr
	}
	if raw.Server.GRPCAddr != nil {
		s.GRPCAddr = *raw.Server.GRPCAddr
	}
	if raw.Log.Level != "" {
		s.LogLevel = raw.Log.Level
	}
	if raw.Log.Format != "" {
		s.LogFormat = raw.Log.Format
	}
	if raw.RNG.Mode != "" {
		s.RNGMode = raw.RNG.Mode
	}
	if raw.RNG.Seed != nil {
		s.Seed = *raw.RNG.Seed
	}
	if raw.Simulate != nil {
		if raw.Simulate.DefaultTrials != nil {
			s.DefaultTrials = *raw.Simulate.DefaultTrials
		}
		if raw.Simulate.MaxTrials != nil {
			s.MaxTrials = *raw.Simulate.MaxTrials
		}
	}
	return s
}
