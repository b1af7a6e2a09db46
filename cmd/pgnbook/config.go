package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// query is one position lookup, either built from command-line
// arguments or read from a --config batch file.
type query struct {
	FEN   string `yaml:"fen"`
	Limit int    `yaml:"limit"`
	Skip  int    `yaml:"skip"`
}

type configFile struct {
	Queries []query `yaml:"queries"`
}

// loadQueries returns the queries to run: either the single FEN
// supplied on the command line, or the batch read from configPath.
// A config entry's limit overrides defaultLimit when nonzero. A config
// entry's skip is always used as read (0 when omitted); defaultSkip
// applies only to the single command-line query.
func loadQueries(configPath, fen string, defaultLimit, defaultSkip int) ([]query, error) {
	if configPath == "" {
		if fen == "" {
			return nil, nil
		}
		return []query{{FEN: fen, Limit: defaultLimit, Skip: defaultSkip}}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("pgnbook: reading config: %w", err)
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("pgnbook: parsing config: %w", err)
	}

	for i := range cfg.Queries {
		if cfg.Queries[i].FEN == "" {
			return nil, fmt.Errorf("pgnbook: config entry %d missing fen", i)
		}
		if cfg.Queries[i].Limit == 0 {
			cfg.Queries[i].Limit = defaultLimit
		}
		if cfg.Queries[i].Limit < 1 {
			return nil, fmt.Errorf("pgnbook: config entry %d: limit must be greater than 0", i)
		}
	}
	return cfg.Queries, nil
}
