package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tifye/haunted/events"
	"github.com/tifye/haunted/results"
	"github.com/tifye/haunted/simulation"
	"github.com/tifye/haunted/spectate"
	"github.com/tifye/haunted/storage"
)

const shutdownTimeout = 5 * time.Second

func main() {
	config := viper.New()
	config.SetEnvPrefix("HAUNTED")
	config.AutomaticEnv()
	setDefaults(config)

	err := godotenv.Load()
	if err != nil {
		log.Warn("could not load .env file", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	level := log.InfoLevel
	if config.GetBool("DEBUG") {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	err = run(ctx, logger, config, os.Stdin, os.Stdout)
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, config *viper.Viper, in io.Reader, out io.Writer) (err error) {
	names, err := hunterNames(config, in, out)
	if err != nil {
		return fmt.Errorf("hunter names: %s", err)
	}

	var cfs CleanupFuncs
	defer func() {
		if ferr := cfs.Cleanup(); ferr != nil {
			err = errors.Join(err, ferr)
		}
	}()

	var store *results.Store
	if path := config.GetString("RESULTS_DB"); path != "" {
		db, err := storage.InitDuckDB(path)
		if err != nil {
			return fmt.Errorf("init results db: %s", err)
		}
		cfs.Defer("close results db", db.Close)
		store = results.NewStore(db)
	}

	sinks := events.Fanout{events.NewLogSink(logger.WithPrefix("game"))}
	var hub *spectate.Hub
	if config.GetBool("SPECTATE") {
		hub = spectate.NewHub(logger.WithPrefix("hub"))
		sinks = append(sinks, hub)
	}

	sim := simulation.NewSimulator(logger.WithPrefix("sim"), simulationConfig(config), names, sinks)

	if hub != nil {
		deps := &spectate.ServerDependencies{
			House: sim.House(),
			Hub:   hub,
		}
		if store != nil {
			deps.Tally = store
		}
		shutdown, err := serveSpectators(logger.WithPrefix("spectate"), config.GetInt("PORT"), deps)
		if err != nil {
			return err
		}
		cfs.Defer("spectate server shutdown", shutdown)
	}

	outcome := sim.Run(ctx)

	if err := outcome.Render(out); err != nil {
		return fmt.Errorf("render outcome: %s", err)
	}

	if store != nil {
		insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := store.Insert(insertCtx, outcome); err != nil {
			return fmt.Errorf("save outcome: %s", err)
		}
		logger.Info("Saved game", "id", outcome.GameID)
	}

	return nil
}

func serveSpectators(logger *log.Logger, port int, deps *spectate.ServerDependencies) (func() error, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("net listen: %s", err)
	}

	s := spectate.NewServer(logger, deps)
	go func() {
		logger.Printf("serving on %s", ln.Addr())
		err := s.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "err", err)
		}
	}()

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(ctx)
	}, nil
}
