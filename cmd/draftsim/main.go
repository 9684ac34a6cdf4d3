package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridironlabs/warroom/internal/simulate"
	"github.com/gridironlabs/warroom/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "draftsim",
		Short: "Scouting engine simulator",
		Long: `draftsim drives the war-room engine end to end: seeded draft classes
and scouting staffs, multi-season evaluation arcs, tier-colored big
boards, and a draft-day pick walk, with live invariant verification.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(seasonCmd())
	rootCmd.AddCommand(boardCmd())
	rootCmd.AddCommand(verifyCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// arcFlags binds the simulation dimensions shared by the full-arc
// commands.
func arcFlags(cmd *cobra.Command, cfg *simulate.Config) {
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "roster and estimate noise seed")
	cmd.Flags().IntVar(&cfg.Seasons, "seasons", cfg.Seasons, "seasons to play")
	cmd.Flags().IntVar(&cfg.Cycles, "cycles", cfg.Cycles, "scouting cycles per season")
	cmd.Flags().IntVar(&cfg.ClassSize, "class", cfg.ClassSize, "prospects per draft class")
	cmd.Flags().IntVar(&cfg.StaffSize, "staff", cfg.StaffSize, "scouts on staff")
	cmd.Flags().IntVar(&cfg.Picks, "picks", cfg.Picks, "draft slots to walk")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "evaluation workers")
	cmd.Flags().IntVar(&cfg.BoardRows, "rows", cfg.BoardRows, "board rows to print")
}

func seasonCmd() *cobra.Command {
	cfg := simulate.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "season",
		Short: "Play full scouting seasons ending in a draft",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := simulate.Run(cmd.Context(), cfg)
			return err
		},
	}
	arcFlags(cmd, cfg)
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "print the board after every season")

	return cmd
}

func boardCmd() *cobra.Command {
	cfg := simulate.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Scout a single season and print the big board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return simulate.Preview(cmd.Context(), cfg)
		},
	}
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "roster and estimate noise seed")
	cmd.Flags().IntVar(&cfg.Cycles, "cycles", cfg.Cycles, "scouting cycles to run")
	cmd.Flags().IntVar(&cfg.ClassSize, "class", cfg.ClassSize, "prospects per draft class")
	cmd.Flags().IntVar(&cfg.StaffSize, "staff", cfg.StaffSize, "scouts on staff")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "evaluation workers")
	cmd.Flags().IntVar(&cfg.BoardRows, "rows", cfg.BoardRows, "board rows to print")

	return cmd
}

func verifyCmd() *cobra.Command {
	cfg := simulate.DefaultConfig()
	cfg.Quiet = true

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the arc and check engine invariants",
		Long: `verify plays the configured arc without the scenery and checks every
live invariant: estimate ranges, trait accounting, focus depth, board
order, reveal gates, draft integrity, and replay determinism. A failed
check exits non-zero.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := simulate.Run(cmd.Context(), cfg)
			return err
		},
	}
	arcFlags(cmd, cfg)

	return cmd
}
