package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tifye/haunted/results"
	"github.com/tifye/haunted/storage"
)

func newTallyCommand(root *rootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Print the stored game results",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd.ErrOrStderr())
			logger.Debug("Opening results db", "path", dbPath)

			db, err := storage.InitDuckDB(dbPath)
			if err != nil {
				return fmt.Errorf("init results db: %s", err)
			}
			defer db.Close()

			tally, err := results.NewStore(db).Tally(cmd.Context())
			if err != nil {
				return fmt.Errorf("tally: %s", err)
			}
			logger.Debug("Tallied games", "games", tally.Games, "classes", len(tally.ByClass))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "games: %d\nghost wins: %d\ncorrect guesses: %d\n", tally.Games, tally.GhostWins, tally.CorrectGuesses)
			for _, c := range tally.ByClass {
				fmt.Fprintf(out, "  %-12s games: %-4d correct: %d\n", c.Class, c.Games, c.Correct)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB file holding saved games")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}
