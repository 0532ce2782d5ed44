package translator

import "context"

// Translator defines the interface for the subtitle translation pipeline.
type Translator interface {
	// Translate processes one subtitle file and returns the path of the
	// translated output file.
	Translate(ctx context.Context, subtitlePath string) (string, error)
}

// Progress is called after each chunk completes.
type Progress func(done, total int)
