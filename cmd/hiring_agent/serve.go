package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramanhiring/hiring-agent/internal/server"
)

var (
	servePort       int
	serveStorageDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job board REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveStorageDir, "storage-dir", "uploads", "Directory for uploaded resumes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// An empty API key is allowed: AI features then run degraded.
	apiKey := os.Getenv("GEMINI_API_KEY")

	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: databaseURL,
		APIKey:      apiKey,
		StorageDir:  serveStorageDir,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
