// Package subtitle implements parsing, composing and chunking of timed
// text cues in the SRT and ASS formats.
package subtitle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format identifies a supported subtitle file format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatASS Format = "ass"
)

// Cue is a single timed text entry, format neutral.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Document is a parsed subtitle file. For ASS input it retains the header
// sections and per-event fields so that Save can round-trip everything
// except the dialogue text.
type Document struct {
	Format Format
	Cues   []Cue

	assHeader []string
	assEvents []assEvent
	assLayout assFieldLayout
}

// DetectFormat determines the subtitle format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT, nil
	case ".ass", ".ssa":
		return FormatASS, nil
	}
	return "", fmt.Errorf("unsupported subtitle format: %s", path)
}

// Load reads and parses a subtitle file, detecting the format from the
// file extension.
func Load(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	switch format {
	case FormatSRT:
		cues, err := ParseSRT(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &Document{Format: FormatSRT, Cues: cues}, nil
	default:
		doc, err := ParseASS(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return doc, nil
	}
}

// Save writes the document to path in its native format.
func (d *Document) Save(path string) error {
	var content string
	switch d.Format {
	case FormatASS:
		content = d.ComposeASS()
	default:
		content = ComposeSRT(d.Cues)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write subtitle: %w", err)
	}
	return nil
}

// WithCues returns a copy of the document carrying replacement cues while
// keeping the format and any preserved ASS material. The cue count must
// match the original for ASS documents.
func (d *Document) WithCues(cues []Cue) (*Document, error) {
	if d.Format == FormatASS && len(cues) != len(d.Cues) {
		return nil, fmt.Errorf("ass document has %d dialogue events, got %d cues", len(d.Cues), len(cues))
	}
	return &Document{
		Format:    d.Format,
		Cues:      cues,
		assHeader: d.assHeader,
		assEvents: d.assEvents,
		assLayout: d.assLayout,
	}, nil
}

// Split divides cues into chunks of at most chunkSize entries.
func Split(cues []Cue, chunkSize int) [][]Cue {
	if chunkSize <= 0 || len(cues) == 0 {
		if len(cues) == 0 {
			return nil
		}
		return [][]Cue{cues}
	}

	var chunks [][]Cue
	for i := 0; i < len(cues); i += chunkSize {
		end := i + chunkSize
		if end > len(cues) {
			end = len(cues)
		}
		chunks = append(chunks, cues[i:end])
	}
	return chunks
}

// Merge concatenates chunks back into a single cue list with sequential
// indexes starting at 1.
func Merge(chunks [][]Cue) []Cue {
	var merged []Cue
	for _, chunk := range chunks {
		merged = append(merged, chunk...)
	}
	for i := range merged {
		merged[i].Index = i + 1
	}
	return merged
}
