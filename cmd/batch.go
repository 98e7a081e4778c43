package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"github.com/tifye/haunted/events"
	"github.com/tifye/haunted/results"
	"github.com/tifye/haunted/simulation"
	"github.com/tifye/haunted/storage"
)

type batchOptions struct {
	*rootOptions
	times      uint
	seed1      uint64
	seed2      uint64
	db         string
	hunterWait time.Duration
	ghostWait  time.Duration
}

func newBatchCommand(root *rootOptions) *cobra.Command {
	opts := &batchOptions{rootOptions: root}
	defaults := simulation.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run games back to back",
		Long: "Run games back to back. The first game uses --seed1 and --seed2 when given, " +
			"every other seed is drawn at random.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.UintVar(&opts.times, "times", 1, "Amount of games to run")
	flags.Uint64Var(&opts.seed1, "seed1", 0, "First seed value")
	flags.Uint64Var(&opts.seed2, "seed2", 0, "Second seed value")
	flags.StringVar(&opts.db, "db", "", "DuckDB file to save outcomes to")
	flags.DurationVar(&opts.hunterWait, "hunter-wait", defaults.HunterWait, "Pause between hunter turns")
	flags.DurationVar(&opts.ghostWait, "ghost-wait", defaults.GhostWait, "Pause between ghost turns")

	return cmd
}

type batchSummary struct {
	games     int
	ghostWins int
	correct   int
}

func runBatch(cmd *cobra.Command, opts *batchOptions) error {
	ctx := cmd.Context()
	logger := opts.logger(cmd.ErrOrStderr())

	var store *results.Store
	if opts.db != "" {
		db, err := storage.InitDuckDB(opts.db)
		if err != nil {
			return fmt.Errorf("init results db: %s", err)
		}
		defer db.Close()
		store = results.NewStore(db)
	}

	sink := events.NewLogSink(logger.WithPrefix("game"))
	summary := batchSummary{}
	for i := range opts.times {
		config := simulation.Config{
			HunterWait: opts.hunterWait,
			GhostWait:  opts.ghostWait,
			Seed1:      rand.Uint64(),
			Seed2:      rand.Uint64(),
		}
		if i == 0 && cmd.Flags().Changed("seed1") {
			config.Seed1 = opts.seed1
		}
		if i == 0 && cmd.Flags().Changed("seed2") {
			config.Seed2 = opts.seed2
		}

		sim := simulation.NewSimulator(logger.WithPrefix("sim"), config, nil, sink)
		outcome := sim.Run(ctx)
		if err := ctx.Err(); err != nil {
			logger.Warn("Batch interrupted", "played", summary.games)
			return nil
		}

		summary.games++
		if outcome.GhostWon {
			summary.ghostWins++
		}
		if outcome.Correct {
			summary.correct++
		}

		if store != nil {
			if err := store.Insert(context.WithoutCancel(ctx), outcome); err != nil {
				return fmt.Errorf("save game %s: %s", outcome.GameID, err)
			}
		}
	}

	logger.Info("Batch finished",
		"games", summary.games,
		"ghostWins", summary.ghostWins,
		"correctGuesses", summary.correct,
	)

	return nil
}
