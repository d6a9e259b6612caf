// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/property-reporter/internal/llm"
	"github.com/jonathan/property-reporter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
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

// PrintNarrative outputs a human-readable summary of one generated chapter.
func (p *Printer) PrintNarrative(chapterID int, n *types.GeneratedNarrative) {
	if n == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:     %s\n", n.Title))
	sb.WriteString(fmt.Sprintf("Intro:     %s\n", n.Intro))
	sb.WriteString(fmt.Sprintf("Conf:      %.2f\n", n.Metadata.Confidence))

	if len(n.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(n.Strengths), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", n.Strengths[i]))
		}
		if len(n.Strengths) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(n.Strengths)-maxItemsToShow))
		}
	}

	if len(n.Advice) > 0 {
		sb.WriteString("\nAdvice:\n")
		count := min(len(n.Advice), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", n.Advice[i]))
		}
		if len(n.Advice) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(n.Advice)-3))
		}
	}

	p.printBox(fmt.Sprintf("CHAPTER %d NARRATIVE", chapterID), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResults outputs the per-persona preference match outcome.
func (p *Printer) PrintMatchResults(a, b types.MatchResult, combined float64) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Combined:  %.0f%%\n\n", combined))
	for _, entry := range []struct {
		label  string
		result types.MatchResult
	}{
		{"Persona A", a},
		{"Persona B", b},
	} {
		sb.WriteString(fmt.Sprintf("%s: %.0f%%\n", entry.label, entry.result.MatchScore))
		if len(entry.result.Matches) > 0 {
			matches := strings.Join(entry.result.Matches, ", ")
			if len(matches) > 40 {
				matches = matches[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", matches))
		}
		if len(entry.result.Misses) > 0 {
			misses := strings.Join(entry.result.Misses, ", ")
			if len(misses) > 40 {
				misses = misses[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", misses))
		}
	}

	p.printBox("PREFERENCE MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProviders outputs the provider registry with model lists.
func (p *Printer) PrintProviders(providers map[string]llm.ProviderInfo) {
	var sb strings.Builder

	first := true
	for name, info := range providers {
		if !first {
			sb.WriteString("\n")
		}
		first = false
		sb.WriteString(fmt.Sprintf("%s (%s)\n", name, info.Label))
		count := min(len(info.Models), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", info.Models[i]))
		}
		if len(info.Models) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(info.Models)-maxItemsToShow))
		}
	}

	p.printBox("REGISTERED PROVIDERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs any narrative contract violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations []string) {
	if len(violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations)))

	for i, v := range violations {
		if len(v) > 50 {
			v = v[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", v))
		if i < len(violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CONTRACT VIOLATIONS", sb.String())
}
