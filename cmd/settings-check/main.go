package main

import (
	"context"
	"flag"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-settings/internal/dbconn"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/settings"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	var settingsPath, environment, keyFile string
	var early, showDB bool
	flag.StringVar(&settingsPath, "c", "", "Settings file path")
	flag.StringVar(&settingsPath, "config", "", "Settings file path (alias)")
	flag.StringVar(&environment, "e", "", "Environment to validate")
	flag.StringVar(&keyFile, "k", "", "Secrets key file path")
	flag.BoolVar(&early, "early", false, "Validate the early (environment-agnostic) configuration")
	flag.BoolVar(&showDB, "db", false, "Print per-environment database settings")
	flag.Parse()

	log := logger.NewLogger("settings-check")

	opts := settings.Options{KeyFile: keyFile, Logger: log}
	if settingsPath != "" {
		opts.CandidatePaths = []string{settingsPath}
	}
	if environment != "" {
		opts.Environment = func() (string, error) { return environment, nil }
	}

	loader, err := settings.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("error building settings loader")
	}

	ctx := context.Background()

	switch {
	case showDB:
		dbs, err := loader.DatabaseConfigs()
		if err != nil {
			log.Fatal().Err(err).Msg("error building database settings")
		}
		for env, db := range dbs {
			if _, err := dbconn.PoolConfig(db); err != nil {
				log.Warn().Err(err).Str("environment", env).Msg("database settings are not connectable")
			}
		}
		printYAML(log, dbs)

	case early:
		cfg, err := loader.EarlyConfig(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("early configuration is invalid")
		}
		printYAML(log, cfg.ToMap())

	default:
		cfg, err := loader.Config(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("configuration is invalid")
		}
		printYAML(log, cfg.ToMap())
	}
}

func printYAML(log *logger.Logger, v any) {
	out, err := yaml.Marshal(v)
	if err != nil {
		log.Fatal().Err(err).Msg("error rendering settings")
	}
	fmt.Print(string(out))
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
