// Package lang normalizes user-supplied language identifiers into BCP-47
// tags and English display names for prompt building.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a normalized language reference.
type Language struct {
	Tag  language.Tag
	Name string
}

// Common display-name aliases that language.Parse does not resolve.
var aliases = map[string]string{
	"english":    "en",
	"japanese":   "ja",
	"korean":     "ko",
	"french":     "fr",
	"german":     "de",
	"spanish":    "es",
	"chinese":    "zh",
	"vietnamese": "vi",
	"简体中文":       "zh-Hans",
	"繁體中文":       "zh-Hant",
}

// Normalize accepts a BCP-47 tag ("ja", "zh-Hans") or an English language
// name ("Japanese") and returns the canonical language.
func Normalize(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Language{}, fmt.Errorf("empty language")
	}

	if code, ok := aliases[strings.ToLower(s)]; ok {
		s = code
	}

	tag, err := language.Parse(s)
	if err != nil {
		return Language{}, fmt.Errorf("unknown language %q: %w", s, err)
	}

	return Language{
		Tag:  tag,
		Name: display.English.Tags().Name(tag),
	}, nil
}

// Suffix returns the short code used in output file names, e.g. "zh" in
// movie_zh.srt.
func (l Language) Suffix() string {
	base, _ := l.Tag.Base()
	return base.String()
}
