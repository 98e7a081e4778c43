package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/viper"
	"github.com/tifye/haunted/simulation"
)

var ordinals = [simulation.NumHunters]string{"first", "second", "third", "fourth"}

func setDefaults(config *viper.Viper) {
	defaults := simulation.DefaultConfig()
	config.SetDefault("HUNTER_WAIT", defaults.HunterWait)
	config.SetDefault("GHOST_WAIT", defaults.GhostWait)
	config.SetDefault("PORT", 6565)
	config.SetDefault("SPECTATE", false)
	config.SetDefault("DEBUG", false)
}

// simulationConfig reads the simulation settings. Seeds that are
// not configured are drawn at random.
func simulationConfig(config *viper.Viper) simulation.Config {
	cfg := simulation.Config{
		HunterWait: config.GetDuration("HUNTER_WAIT"),
		GhostWait:  config.GetDuration("GHOST_WAIT"),
		Seed1:      rand.Uint64(),
		Seed2:      rand.Uint64(),
	}
	if config.IsSet("SEED1") {
		cfg.Seed1 = config.GetUint64("SEED1")
	}
	if config.IsSet("SEED2") {
		cfg.Seed2 = config.GetUint64("SEED2")
	}
	return cfg
}

// hunterNames takes the names from HUNTERS when set and otherwise
// prompts for each one on in.
func hunterNames(config *viper.Viper, in io.Reader, out io.Writer) ([]string, error) {
	if raw := config.GetString("HUNTERS"); raw != "" {
		names := strings.Split(raw, ",")
		if len(names) > simulation.NumHunters {
			return nil, fmt.Errorf("expected at most %d hunters, got %d", simulation.NumHunters, len(names))
		}
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		return names, nil
	}

	r := bufio.NewReader(in)
	names := make([]string, 0, simulation.NumHunters)
	for _, ordinal := range ordinals {
		fmt.Fprintf(out, "Enter the name of the %s hunter: ", ordinal)
		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return nil, fmt.Errorf("read %s hunter name: %s", ordinal, err)
		}
		names = append(names, strings.TrimRight(line, "\r\n"))
	}
	return names, nil
}
