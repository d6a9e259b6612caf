// Package validation enforces the narrative output contract per chapter.
// The gate never raises; it returns a list of human-readable violations so
// the caller can aggregate failures across all chapters before deciding
// whether to fail the report.
package validation

import (
	"fmt"

	"github.com/jonathan/property-reporter/internal/types"
)

const (
	// MinNarrativeWords is the minimum word count for chapters 0-12.
	MinNarrativeWords = 300

	// MediaChapterID is the media-only chapter, exempt from the narrative
	// contract.
	MediaChapterID = 13
)

// Violation message prefixes. Kept stable: the presentation layer matches on
// them.
const (
	violationMissing  = "Narrative Missing"
	violationTooShort = "Narrative Too Short"
)

// ValidateChapterOutput checks one chapter's output against the narrative
// contract. Chapters 0-12 require a narrative of at least MinNarrativeWords
// words; the media chapter requires none. The returned list is empty when
// the output is compliant.
func ValidateChapterOutput(chapterID int, output *types.ChapterOutput, pctx types.PropertyContext) []string {
	var errs []string

	if chapterID == MediaChapterID {
		return errs
	}

	if output == nil || output.Narrative == nil {
		errs = append(errs, fmt.Sprintf("%s: chapter %d has no narrative", violationMissing, chapterID))
		return errs
	}

	if output.Narrative.WordCount < MinNarrativeWords {
		errs = append(errs, fmt.Sprintf("%s: chapter %d has %d words, minimum is %d",
			violationTooShort, chapterID, output.Narrative.WordCount, MinNarrativeWords))
	}

	return errs
}

// ValidateReport runs the gate over every chapter output and returns all
// violations in chapter order.
func ValidateReport(outputs map[int]*types.ChapterOutput, pctx types.PropertyContext) []string {
	var all []string
	for id := 0; id <= MediaChapterID; id++ {
		output, ok := outputs[id]
		if !ok {
			output = nil
		}
		all = append(all, ValidateChapterOutput(id, output, pctx)...)
	}
	return all
}
