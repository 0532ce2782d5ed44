package extract

import "context"

// Extractor pulls an embedded subtitle stream out of a video container.
type Extractor interface {
	// Extract writes the subtitle stream to an SRT file next to the
	// temp data and returns its path.
	Extract(ctx context.Context, videoPath string) (string, error)
}
