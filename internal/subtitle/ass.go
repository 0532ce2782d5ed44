package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// assEvent is one line of the [Events] section. Dialogue lines carry the
// split fields and a cue reference; every other line is kept verbatim.
type assEvent struct {
	passthrough string
	fields      []string
	cue         int
}

type assFieldLayout struct {
	start, end, text int
}

// Standard V4+ event layout: Layer, Start, End, Style, Name, MarginL,
// MarginR, MarginV, Effect, Text.
var defaultASSLayout = assFieldLayout{start: 1, end: 2, text: 9}

// ParseASS parses Advanced SubStation Alpha content. Header sections
// ([Script Info], [V4+ Styles], the [Events] format line) are preserved
// verbatim; Dialogue events become cues with their override tags and \N
// line breaks kept inline in the text.
func ParseASS(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	doc := &Document{Format: FormatASS}
	layout := defaultASSLayout
	inEvents := false

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if !inEvents {
			doc.assHeader = append(doc.assHeader, line)
			if strings.EqualFold(trimmed, "[Events]") {
				inEvents = true
			}
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "Format:"):
			var err error
			layout, err = parseASSFormat(trimmed)
			if err != nil {
				return nil, err
			}
			doc.assHeader = append(doc.assHeader, line)

		case strings.HasPrefix(trimmed, "Dialogue:"):
			rest := strings.TrimLeft(strings.TrimPrefix(trimmed, "Dialogue:"), " ")
			fields := strings.SplitN(rest, ",", layout.text+1)
			if len(fields) != layout.text+1 {
				return nil, fmt.Errorf("dialogue line has %d fields, want %d: %q", len(fields), layout.text+1, line)
			}
			start, err := ParseASSTimestamp(fields[layout.start])
			if err != nil {
				return nil, fmt.Errorf("dialogue start: %w", err)
			}
			end, err := ParseASSTimestamp(fields[layout.end])
			if err != nil {
				return nil, fmt.Errorf("dialogue end: %w", err)
			}

			doc.Cues = append(doc.Cues, Cue{
				Index: len(doc.Cues) + 1,
				Start: start,
				End:   end,
				Text:  fields[layout.text],
			})
			doc.assEvents = append(doc.assEvents, assEvent{
				fields: fields,
				cue:    len(doc.Cues) - 1,
			})

		default:
			doc.assEvents = append(doc.assEvents, assEvent{passthrough: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ass: %w", err)
	}

	doc.assLayout = layout
	return doc, nil
}

// ComposeASS renders the document back to ASS text, substituting the
// current cue timings and text into the preserved dialogue fields.
func (d *Document) ComposeASS() string {
	layout := d.assLayout
	if layout.text == 0 {
		layout = defaultASSLayout
	}

	var b strings.Builder
	for _, line := range d.assHeader {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, ev := range d.assEvents {
		if ev.fields == nil {
			b.WriteString(ev.passthrough)
			b.WriteByte('\n')
			continue
		}
		fields := make([]string, len(ev.fields))
		copy(fields, ev.fields)
		cue := d.Cues[ev.cue]
		fields[layout.start] = FormatASSTimestamp(cue.Start)
		fields[layout.end] = FormatASSTimestamp(cue.End)
		fields[layout.text] = cue.Text
		b.WriteString("Dialogue: ")
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func parseASSFormat(line string) (assFieldLayout, error) {
	layout := assFieldLayout{start: -1, end: -1, text: -1}
	rest := strings.TrimPrefix(line, "Format:")
	for i, name := range strings.Split(rest, ",") {
		switch strings.TrimSpace(name) {
		case "Start":
			layout.start = i
		case "End":
			layout.end = i
		case "Text":
			layout.text = i
		}
	}
	if layout.start < 0 || layout.end < 0 || layout.text < 0 {
		return layout, fmt.Errorf("events format line missing Start/End/Text: %q", line)
	}
	return layout, nil
}

// ParseASSTimestamp parses H:MM:SS.cc (centiseconds) into a duration.
func ParseASSTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	secParts := strings.Split(parts[2], ".")
	if len(secParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])
	seconds, errS := strconv.Atoi(secParts[0])
	centis, errC := strconv.Atoi(secParts[1])
	if errH != nil || errM != nil || errS != nil || errC != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(centis)*10*time.Millisecond, nil
}

// FormatASSTimestamp renders a duration as H:MM:SS.cc.
func FormatASSTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	centis := d / (10 * time.Millisecond)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
