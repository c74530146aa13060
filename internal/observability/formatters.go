// Package observability provides formatted output utilities for CLI runs.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/ramanhiring/hiring-agent/internal/db"
	"github.com/ramanhiring/hiring-agent/internal/shortlist"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI commands.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintShortlistReport outputs a human-readable summary of one batch.
func (p *Printer) PrintShortlistReport(report *shortlist.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:          %s\n", report.JobID))
	sb.WriteString(fmt.Sprintf("Applications: %d\n", report.Total))
	sb.WriteString(fmt.Sprintf("Newly scored: %d\n", report.Scored))
	sb.WriteString(fmt.Sprintf("Shortlisted:  %d\n", report.Shortlisted))
	sb.WriteString(fmt.Sprintf("Notified:     %d\n", report.Notified))

	if len(report.Failures) > 0 {
		sb.WriteString("\nFailures:\n")
		count := min(len(report.Failures), maxItemsToShow)
		for i := 0; i < count; i++ {
			f := report.Failures[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s: %s\n", f.Stage, f.CandidateEmail, f.Reason))
		}
		if len(report.Failures) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Failures)-maxItemsToShow))
		}
	}

	p.printBox("Shortlisting Report", strings.TrimRight(sb.String(), "\n"))
}

// PrintMatchScore outputs a human-readable summary of one match score.
func (p *Printer) PrintMatchScore(score *db.MatchScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:    %d\n", score.OverallScore))
	sb.WriteString(fmt.Sprintf("Skills:     %d\n", score.SkillsMatch))
	sb.WriteString(fmt.Sprintf("Experience: %d\n", score.ExperienceMatch))
	sb.WriteString(fmt.Sprintf("Education:  %d\n", score.EducationMatch))

	if len(score.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(score.Strengths), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", score.Strengths[i]))
		}
	}
	if len(score.Gaps) > 0 {
		sb.WriteString("\nGaps:\n")
		count := min(len(score.Gaps), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", score.Gaps[i]))
		}
	}
	if score.Recommendation != "" {
		sb.WriteString("\nRecommendation: " + score.Recommendation + "\n")
	}

	p.printBox("Match Score", strings.TrimRight(sb.String(), "\n"))
}
