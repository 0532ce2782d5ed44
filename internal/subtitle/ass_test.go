package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleASS = `[Script Info]
Title: Sample
ScriptType: v4.00+

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour
Style: Default,Arial,20,&H00FFFFFF

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:03.50,Default,,0,0,0,,Hello there.
Comment: 0,0:00:00.00,0:00:00.00,Default,,0,0,0,,translator note
Dialogue: 0,0:00:04.00,0:00:06.00,Default,,0,0,0,,{\i1}Styled{\i0}\NSecond line
`

func TestParseASS(t *testing.T) {
	doc, err := ParseASS(strings.NewReader(sampleASS))
	if err != nil {
		t.Fatalf("ParseASS() error = %v", err)
	}

	if len(doc.Cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(doc.Cues))
	}
	if doc.Cues[0].Start != time.Second {
		t.Errorf("cue 1 start = %v, want 1s", doc.Cues[0].Start)
	}
	if doc.Cues[0].End != 3500*time.Millisecond {
		t.Errorf("cue 1 end = %v, want 3.5s", doc.Cues[0].End)
	}
	if doc.Cues[1].Text != `{\i1}Styled{\i0}\NSecond line` {
		t.Errorf("cue 2 text = %q, override tags must be preserved", doc.Cues[1].Text)
	}
}

func TestComposeASSRoundTrip(t *testing.T) {
	doc, err := ParseASS(strings.NewReader(sampleASS))
	if err != nil {
		t.Fatal(err)
	}

	out := doc.ComposeASS()

	for _, want := range []string{
		"[Script Info]",
		"Style: Default,Arial,20,&H00FFFFFF",
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text",
		"Comment: 0,0:00:00.00,0:00:00.00,Default,,0,0,0,,translator note",
		`Dialogue: 0,0:00:04.00,0:00:06.00,Default,,0,0,0,,{\i1}Styled{\i0}\NSecond line`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("composed output missing %q:\n%s", want, out)
		}
	}

	again, err := ParseASS(strings.NewReader(out))
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}
	if len(again.Cues) != len(doc.Cues) {
		t.Fatalf("round trip changed cue count: %d -> %d", len(doc.Cues), len(again.Cues))
	}
}

func TestComposeASSWithTranslatedCues(t *testing.T) {
	doc, err := ParseASS(strings.NewReader(sampleASS))
	if err != nil {
		t.Fatal(err)
	}

	translated := make([]Cue, len(doc.Cues))
	copy(translated, doc.Cues)
	translated[0].Text = "你好。"

	out, err := doc.WithCues(translated)
	if err != nil {
		t.Fatalf("WithCues() error = %v", err)
	}

	composed := out.ComposeASS()
	if !strings.Contains(composed, "Dialogue: 0,0:00:01.00,0:00:03.50,Default,,0,0,0,,你好。") {
		t.Errorf("translated text not substituted:\n%s", composed)
	}
}

func TestWithCuesCountMismatch(t *testing.T) {
	doc, err := ParseASS(strings.NewReader(sampleASS))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := doc.WithCues(doc.Cues[:1]); err == nil {
		t.Error("WithCues() should reject a cue count mismatch for ASS")
	}
}

func TestParseASSCustomFormat(t *testing.T) {
	input := `[Events]
Format: Start, End, Text
Dialogue: 0:00:01.00,0:00:02.00,Short form
`
	doc, err := ParseASS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseASS() error = %v", err)
	}
	if len(doc.Cues) != 1 || doc.Cues[0].Text != "Short form" {
		t.Errorf("cues = %+v", doc.Cues)
	}
}

func TestParseASSBadFormatLine(t *testing.T) {
	input := `[Events]
Format: Layer, Style
Dialogue: 0,Default
`
	if _, err := ParseASS(strings.NewReader(input)); err == nil {
		t.Error("ParseASS() should reject a format line without Start/End/Text")
	}
}

func TestASSTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"0:00:00.00", 0, false},
		{"1:02:03.45", time.Hour + 2*time.Minute + 3*time.Second + 450*time.Millisecond, false},
		{"0:00:01", 0, true},
		{"bogus", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseASSTimestamp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseASSTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseASSTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if got := FormatASSTimestamp(time.Hour + 2*time.Minute + 3*time.Second + 450*time.Millisecond); got != "1:02:03.45" {
		t.Errorf("FormatASSTimestamp() = %q", got)
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()

	srtPath := filepath.Join(dir, "movie.srt")
	if err := os.WriteFile(srtPath, []byte("\xEF\xBB\xBF"+sampleSRT), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(srtPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Format != FormatSRT {
		t.Errorf("Format = %v, want srt", doc.Format)
	}
	if len(doc.Cues) != 3 {
		t.Errorf("got %d cues, want 3 (BOM must be stripped)", len(doc.Cues))
	}

	outPath := filepath.Join(dir, "movie_zh.srt")
	if err := doc.Save(outPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	saved, err := Load(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Cues) != 3 {
		t.Errorf("saved file has %d cues, want 3", len(saved.Cues))
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"movie.srt", FormatSRT, false},
		{"movie.SRT", FormatSRT, false},
		{"movie.ass", FormatASS, false},
		{"movie.ssa", FormatASS, false},
		{"movie.vtt", "", true},
		{"movie", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
