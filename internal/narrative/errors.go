// Package narrative defines the strict narrative contract: text plus word
// count, a mandatory AI provider, and a hard minimum length. Unlike the
// engine's template fallback, this layer treats "no provider" as an error;
// it is used where a full-length narrative is non-negotiable.
package narrative

import "fmt"

// GenerationError reports that a narrative could not be generated at all,
// most commonly because no AI provider was supplied.
type GenerationError struct {
	ChapterID int
	Message   string
	Cause     error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("narrative generation failed for chapter %d: %s: %v", e.ChapterID, e.Message, e.Cause)
	}
	return fmt.Sprintf("narrative generation failed for chapter %d: %s", e.ChapterID, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// WordCountError reports a narrative that was generated but falls short of
// the minimum word count.
type WordCountError struct {
	ChapterID int
	WordCount int
	Minimum   int
}

func (e *WordCountError) Error() string {
	return fmt.Sprintf("narrative for chapter %d has %d words, minimum is %d", e.ChapterID, e.WordCount, e.Minimum)
}
