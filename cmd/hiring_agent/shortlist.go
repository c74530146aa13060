package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ramanhiring/hiring-agent/internal/ai"
	"github.com/ramanhiring/hiring-agent/internal/config"
	"github.com/ramanhiring/hiring-agent/internal/db"
	"github.com/ramanhiring/hiring-agent/internal/llm"
	"github.com/ramanhiring/hiring-agent/internal/mailer"
	"github.com/ramanhiring/hiring-agent/internal/observability"
	"github.com/ramanhiring/hiring-agent/internal/shortlist"
)

var shortlistJobID string

var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Run the shortlisting batch for one job",
	Long: `Score every application for a job, promote candidates at or above the
match threshold and email them. Per-candidate failures are reported
without aborting the rest of the batch.`,
	RunE: runShortlist,
}

func init() {
	shortlistCmd.Flags().StringVar(&shortlistJobID, "job", "", "Job ID to shortlist (required)")
	_ = shortlistCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(shortlistCmd)
}

func runShortlist(cmd *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(shortlistJobID)
	if err != nil {
		return fmt.Errorf("invalid job ID %q: %w", shortlistJobID, err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	var client llm.Client
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err = llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close() //nolint:errcheck
	} else {
		fmt.Fprintln(os.Stderr, "GEMINI_API_KEY not set, unscored applications receive zero scores")
	}
	scorer := ai.NewScorer(client)

	var m mailer.Mailer = mailer.Disabled{}
	var templateID string
	var contact mailer.CompanyContact
	if emailConfig, err := config.NewEmailConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Email notifications disabled: %v\n", err)
	} else {
		m = mailer.NewEmailJSMailer(emailConfig)
		templateID = emailConfig.ShortlistTemplateID
		contact = mailer.CompanyContact{
			Email:   emailConfig.CompanyEmail,
			Phone:   emailConfig.CompanyPhone,
			Address: emailConfig.CompanyAddress,
			Website: emailConfig.CompanyWebsite,
		}
	}

	orchestrator := shortlist.New(database, scorer, m, templateID, contact)
	report, err := orchestrator.ShortlistAll(ctx, jobID)
	if err != nil {
		return fmt.Errorf("shortlisting failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintShortlistReport(report)

	if !report.Clean() {
		return fmt.Errorf("%d of %d applications failed", len(report.Failures), report.Total)
	}
	return nil
}
