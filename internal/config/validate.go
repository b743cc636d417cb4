package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ValidateRaw checks semantic constraints of a merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// server
	if cfg.Server.HTTPAddr != nil && strings.TrimSpace(*cfg.Server.HTTPAddr) == "" {
		errs = append(errs, "server.http_addr must not be empty")
	}
	if cfg.Server.GRPCAddr != nil && strings.TrimSpace(*cfg.Server.GRPCAddr) == "" {
		errs = append(errs, "server.grpc_addr must not be empty")
	}

	// log
	errs = append(errs, checkLog("log.level", "log.format", cfg.Log.Level, cfg.Log.Format)...)

	// rng
	errs = append(errs, checkRNGMode("rng.mode", cfg.RNG.Mode)...)

	// simulate
	if cfg.Simulate != nil {
		def, limit := cfg.Simulate.DefaultTrials, cfg.Simulate.MaxTrials
		if def != nil && *def <= 0 {
			errs = append(errs, "simulate.default_trials must be >= 1")
		}
		if limit != nil && *limit <= 0 {
			errs = append(errs, "simulate.max_trials must be >= 1")
		}
		if def != nil && limit != nil && *def > *limit {
			errs = append(errs, "simulate.default_trials must be <= simulate.max_trials")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidateSettings re-checks the final values, which env overrides may have changed.
func ValidateSettings(s Settings) error {
	var errs []string

	if strings.TrimSpace(s.HTTPAddr) == "" {
		errs = append(errs, "SWITCH_HTTP_ADDR must not be empty")
	}
	if strings.TrimSpace(s.GRPCAddr) == "" {
		errs = append(errs, "SWITCH_GRPC_ADDR must not be empty")
	}
	errs = append(errs, checkLog("SWITCH_LOG_LEVEL", "SWITCH_LOG_FORMAT", s.LogLevel, s.LogFormat)...)
	errs = append(errs, checkRNGMode("SWITCH_RNG_MODE", s.RNGMode)...)
	if s.DefaultTrials <= 0 {
		errs = append(errs, "SWITCH_SIM_DEFAULT_TRIALS must be >= 1")
	}
	if s.MaxTrials <= 0 {
		errs = append(errs, "SWITCH_SIM_MAX_TRIALS must be >= 1")
	}
	if s.DefaultTrials > s.MaxTrials {
		errs = append(errs, "default trials must be <= max trials")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func checkLog(levelKey, formatKey, level, format string) []string {
	var errs []string
	if level != "" {
		if _, err := zerolog.ParseLevel(level); err != nil {
			errs = append(errs, levelKey+" must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
		}
	}
	switch format {
	case "", FormatJSON, FormatConsole:
	default:
		errs = append(errs, formatKey+" must be one of: json, console")
	}
	return errs
}

func checkRNGMode(key, mode string) []string {
	switch mode {
	case "", RNGCrypto, RNGSeeded:
		return nil
	}
	return []string{key + " must be one of: crypto, seeded"}
}
