package engine

import (
	"context"
	"fmt"
)

// Request carries one chunk of subtitle text to translate.
type Request struct {
	// Prompt is the user-configurable instruction prepended to every call.
	Prompt string
	// SourceLanguage and TargetLanguage are English display names.
	SourceLanguage string
	TargetLanguage string
	// Text is an SRT-formatted chunk of cues.
	Text string
}

// Instruction renders the full instruction text sent ahead of the chunk.
func (r Request) Instruction() string {
	return fmt.Sprintf("%s\nTranslate the subtitles from %s to %s.",
		r.Prompt, r.SourceLanguage, r.TargetLanguage)
}

// Engine defines the interface for translation backends.
type Engine interface {
	// Name returns the engine identifier, e.g. "gemini".
	Name() string

	// Translate sends one chunk to the backend and returns the raw
	// response text. The caller is responsible for parsing it back
	// into cues.
	Translate(ctx context.Context, req Request) (string, error)
}
