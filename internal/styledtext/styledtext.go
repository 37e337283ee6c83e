package styledtext

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultColor is used for spans without an explicit color tag.
const DefaultColor = "white"

// Run is a contiguous text span with one resolved fill color.
type Run struct {
	Text  string
	Color string
}

const (
	colorOpenPrefix = "[color="
	colorClose      = "[/color]"
)

// ParseColorRuns splits text with inline [color=...]...[/color] markup into
// ordered runs. Unmarked spans get DefaultColor. The parser is total: a tag
// without a closing bracket or closing pair is kept as literal text instead
// of failing.
func ParseColorRuns(text string) []Run {
	var runs []Run
	rest := text

	appendRun := func(s, c string) {
		if s == "" {
			return
		}
		runs = append(runs, Run{Text: s, Color: c})
	}

	for {
		open := strings.Index(rest, colorOpenPrefix)
		if open < 0 {
			appendRun(rest, DefaultColor)
			break
		}

		tagEnd := strings.Index(rest[open:], "]")
		if tagEnd < 0 {
			// Unterminated open tag: render literally.
			appendRun(rest, DefaultColor)
			break
		}
		tagEnd += open

		closeIdx := strings.Index(rest[tagEnd+1:], colorClose)
		if closeIdx < 0 {
			// No closing pair: render literally.
			appendRun(rest, DefaultColor)
			break
		}
		closeIdx += tagEnd + 1

		appendRun(rest[:open], DefaultColor)

		color := rest[open+len(colorOpenPrefix) : tagEnd]
		if color == "" {
			color = DefaultColor
		}
		appendRun(rest[tagEnd+1:closeIdx], color)

		rest = rest[closeIdx+len(colorClose):]
		if rest == "" {
			break
		}
	}

	if runs == nil {
		runs = []Run{}
	}
	return runs
}

var (
	bgOpacityOuter   = regexp.MustCompile(`(?s)^\s*\[bg_opacity=([^\]]*)\](.*)\[/bg_opacity\]\s*$`)
	bgOpacityPartial = regexp.MustCompile(`\[/?bg_opacity[^\]]*\]?`)
)

// ParseBackgroundOpacity extracts at most one outer [bg_opacity=N]...[/bg_opacity]
// wrapper from text. The returned percent falls back to defaultPercent when the
// value is non-numeric or outside [0,100]. When no complete wrapper is present,
// partial or malformed wrapper tags are stripped so they never render literally.
func ParseBackgroundOpacity(text string, defaultPercent int) (string, int) {
	m := bgOpacityOuter.FindStringSubmatch(text)
	if m == nil {
		return bgOpacityPartial.ReplaceAllString(text, ""), defaultPercent
	}

	clean := m[2]
	v, err := strconv.Atoi(strings.TrimSpace(m[1]))
	if err != nil || v < 0 || v > 100 {
		return clean, defaultPercent
	}
	return clean, v
}

// StripTags returns text with all color and opacity markup removed. Used for
// plain-text contexts such as logging and the asset bin.
func StripTags(text string) string {
	clean, _ := ParseBackgroundOpacity(text, 0)
	var b strings.Builder
	for _, r := range ParseColorRuns(clean) {
		b.WriteString(r.Text)
	}
	return b.String()
}
