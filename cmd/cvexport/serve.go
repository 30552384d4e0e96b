package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Slavigrad/cv-export/internal/config"
	"github.com/Slavigrad/cv-export/internal/server"
)

var (
	servePort    int
	serveConfig  string
	serveVerbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for exporting and previewing the CV. Configuration comes from a JSON file and environment variables; the memory cache tier is always on, Redis and PostgreSQL tiers activate when configured.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides configuration)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON configuration file")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Log cache analytics on every update")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	var cfg *config.Config
	var err error
	if serveConfig != "" {
		cfg, err = config.LoadConfig(serveConfig)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveVerbose {
		cfg.Verbose = true
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
