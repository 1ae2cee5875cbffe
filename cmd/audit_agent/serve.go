package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jordan/marketing-audit/internal/server"
)

var (
	servePort       int
	serveUseBrowser bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for creating companies, seeding report sets, and triggering analyzer runs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use a headless browser for JavaScript-rendered sites")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	port := servePort
	if cfg.Port != 0 && port == 8080 {
		port = cfg.Port
	}

	srv, err := server.New(server.Config{
		Port:             port,
		DatabaseURL:      cfg.DatabaseURL,
		GoogleMapsAPIKey: cfg.GoogleMapsAPIKey,
		YelpAPIKey:       cfg.YelpAPIKey,
		UseBrowser:       serveUseBrowser || cfg.UseBrowser,
		Verbose:          serveVerbose || cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
