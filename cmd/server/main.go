package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xtding233/switch-game/internal/config"
	"github.com/xtding233/switch-game/internal/logging"
	"github.com/xtding233/switch-game/internal/switchgame"
)

var (
	// Global flags
	configDir string
	profile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:           "switchgame",
	Short:         "Resolve switch-game rounds",
	Long:          "switchgame settles rock/paper/scissors switch-game rounds, including the mirror-round rules, over HTTP, gRPC or the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(logging.Options{Level: logLevel, Format: logFormat})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log.Logger = logger
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "config", "directory holding default.yaml and profile files")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "config profile layered over default.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format override (json, console)")

	rootCmd.AddCommand(serveCmd, resolveCmd, simulateCmd)
}

// loadSettings resolves config files and env, then applies flag overrides.
func loadSettings(loader *config.Loader) (config.Settings, error) {
	s, err := loader.Load(profile)
	if err != nil {
		return config.Settings{}, err
	}
	if logLevel != "" {
		s.LogLevel = logLevel
	}
	if logFormat != "" {
		s.LogFormat = logFormat
	}
	return s, nil
}

// buildRNG picks the tiebreak source. Seeded mode without a seed draws one and logs it
// so the run can be replayed.
func buildRNG(mode string, seed uint64) (switchgame.RandomSource, error) {
	if mode != config.RNGSeeded {
		return switchgame.DefaultRNG(), nil
	}
	if seed == 0 {
		s, err := switchgame.NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	log.Info().Uint64("seed", seed).Msg("using seeded tiebreak source")
	return switchgame.NewSeededRNG(seed), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
