// Package export renders translated subtitles as clean docx transcripts.
package export

import (
	"strings"

	"github.com/gomutex/godocx"

	"github.com/phamtrung99/subtrans/internal/subtitle"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

// WriteTranscript writes the cue text as a styled docx document, with
// indexes and timestamps stripped and consecutive duplicate lines
// collapsed.
func WriteTranscript(title string, cues []subtitle.Cue, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	titleRun := doc.AddParagraph("").AddText(title).Font(fontName).Size(titleSize).Color("000000")
	titleRun.Bold(true)
	doc.AddParagraph("")

	var prev string
	for _, cue := range cues {
		for _, line := range strings.Split(cue.Text, "\n") {
			line = strings.TrimSpace(stripOverrideTags(line))
			if line == "" || line == prev {
				continue
			}
			prev = line
			p := doc.AddParagraph("")
			p.AddText(line).Font(fontName).Size(fontSize).Color("000000")
		}
	}

	return doc.SaveTo(outputPath)
}

// stripOverrideTags drops ASS {\...} override tags and converts \N soft
// breaks to spaces so the transcript reads as prose.
func stripOverrideTags(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), `\N`, " ")
}
