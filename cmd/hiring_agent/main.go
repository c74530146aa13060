// Package main provides the entry point for the hiring platform server and tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiring_agent",
	Short: "Hiring platform HTTP API server",
	Long:  "Hiring agent serves the job board REST API: postings, applications, timed assessments, AI match scoring and bulk shortlisting.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
