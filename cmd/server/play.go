package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/xtding233/switch-game/internal/switchgame"
)

var (
	seed   uint64
	trials int
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <p1-move> <p2-move>",
	Short: "Resolve one round and print the outcome",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m1, m2, err := parseArgs(args)
		if err != nil {
			return err
		}
		rng, err := cliRNG()
		if err != nil {
			return err
		}
		out, err := switchgame.NewResolver(rng).Resolve(m1, m2)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"p1":          m1,
			"p2":          m2,
			"outcome":     out,
			"obligations": out.Obligations(),
		})
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <p1-move> <p2-move>",
	Short: "Resolve the same pairing many times and print the tally",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m1, m2, err := parseArgs(args)
		if err != nil {
			return err
		}
		rng, err := cliRNG()
		if err != nil {
			return err
		}
		stats, err := switchgame.Simulate(m1, m2, trials, rng)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"stats": stats,
			"fair":  stats.Fair(switchgame.Z99),
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{resolveCmd, simulateCmd} {
		c.Flags().Uint64Var(&seed, "seed", 0, "seed the tiebreak source for a reproducible run (0 = crypto source)")
	}
	simulateCmd.Flags().IntVar(&trials, "trials", 10000, "number of rounds to resolve")
}

func parseArgs(args []string) (switchgame.Move, switchgame.Move, error) {
	m1, err := switchgame.ParseMove(args[0])
	if err != nil {
		return 0, 0, err
	}
	m2, err := switchgame.ParseMove(args[1])
	if err != nil {
		return 0, 0, err
	}
	return m1, m2, nil
}

func cliRNG() (switchgame.RandomSource, error) {
	if seed == 0 {
		return switchgame.DefaultRNG(), nil
	}
	return switchgame.NewSeededRNG(seed), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
