package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParseSRT parses SRT content into cues. Blocks are separated by blank
// lines; the numeric index line is optional. Both comma and period
// millisecond separators are accepted.
func ParseSRT(r io.Reader) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var cues []Cue
	var block []string

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		cue, err := parseSRTBlock(block)
		if err != nil {
			return err
		}
		cues = append(cues, cue)
		block = nil
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan srt: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return cues, nil
}

func parseSRTBlock(block []string) (Cue, error) {
	var cue Cue

	i := 0
	// Index line is optional; some encoders omit it.
	if !strings.Contains(block[0], "-->") {
		index, err := strconv.Atoi(strings.TrimSpace(block[0]))
		if err != nil {
			return cue, fmt.Errorf("invalid cue index %q", block[0])
		}
		cue.Index = index
		i = 1
	}

	if i >= len(block) || !strings.Contains(block[i], "-->") {
		return cue, fmt.Errorf("cue %d: missing timing line", cue.Index)
	}

	parts := strings.SplitN(block[i], "-->", 2)
	start, err := ParseSRTTimestamp(parts[0])
	if err != nil {
		return cue, fmt.Errorf("cue %d: %w", cue.Index, err)
	}
	// Trailing cue settings after the end timestamp are ignored.
	endText := strings.TrimSpace(parts[1])
	if idx := strings.IndexByte(endText, ' '); idx > 0 {
		endText = endText[:idx]
	}
	end, err := ParseSRTTimestamp(endText)
	if err != nil {
		return cue, fmt.Errorf("cue %d: %w", cue.Index, err)
	}

	cue.Start = start
	cue.End = end
	cue.Text = strings.Join(block[i+1:], "\n")
	return cue, nil
}

// ComposeSRT renders cues as SRT text, renumbering sequentially from 1.
func ComposeSRT(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatSRTTimestamp(cue.Start),
			FormatSRTTimestamp(cue.End),
			cue.Text,
		)
	}
	return b.String()
}

// ParseSRTTimestamp parses HH:MM:SS,mmm into a duration. A period
// millisecond separator is normalized to the standard comma.
func ParseSRTTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")

	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// FormatSRTTimestamp renders a duration as HH:MM:SS,mmm.
func FormatSRTTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
