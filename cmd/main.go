package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	Execute(ctx)
}

type rootOptions struct {
	debug bool
}

func (o *rootOptions) logger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if o.debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "haunted",
		Short:        "Run and inspect haunted house games",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Include debug logs")

	cmd.AddCommand(
		newBatchCommand(opts),
		newTallyCommand(opts),
	)

	return cmd
}

func Execute(ctx context.Context) {
	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
