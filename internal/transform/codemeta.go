package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// {2} {2,5-7} — one-based line numbers and inclusive ranges.
	highlightRangeRe = regexp.MustCompile(`^\{([\d,\s-]+)\}$`)

	// /word/ — word-diff marker.
	wordMarkerRe = regexp.MustCompile(`^/(.+)/$`)

	// title="main.ts" — quoted key=value directive.
	keyValueRe = regexp.MustCompile(`^(\w+)="([^"]*)"$`)
)

// ParseFenceInfo splits a fence info string into the language tag and the
// parsed directive annotations. The info string is the text after the
// opening fence, e.g.
//
//	ts {2,5-7} /useState/ title="hooks.ts" showLineNumbers
//
// An unparseable highlight range is an error; unknown directives are
// ignored so fences copied from elsewhere keep working.
func ParseFenceInfo(info string) (string, CodeMeta, error) {
	var meta CodeMeta

	fields := splitFenceFields(strings.TrimSpace(info))
	if len(fields) == 0 {
		return "", meta, nil
	}

	lang := fields[0]
	if strings.HasPrefix(lang, "{") || strings.HasPrefix(lang, "/") {
		// No language tag; the first field is already a directive.
		lang = ""
	} else {
		fields = fields[1:]
	}

	for _, field := range fields {
		switch {
		case highlightRangeRe.MatchString(field):
			lines, err := expandLineRanges(highlightRangeRe.FindStringSubmatch(field)[1])
			if err != nil {
				return "", meta, err
			}
			meta.HighlightLines = append(meta.HighlightLines, lines...)

		case wordMarkerRe.MatchString(field):
			meta.WordMarkers = append(meta.WordMarkers, wordMarkerRe.FindStringSubmatch(field)[1])

		case keyValueRe.MatchString(field):
			kv := keyValueRe.FindStringSubmatch(field)
			if kv[1] == "title" {
				meta.Title = kv[2]
			}

		case field == "showLineNumbers":
			meta.ShowLineNumbers = true
		}
	}

	sort.Ints(meta.HighlightLines)
	return lang, meta, nil
}

// splitFenceFields splits on spaces but keeps quoted values intact, so
// title="two words" stays one field.
func splitFenceFields(info string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range info {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				fields = append(fields, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		fields = append(fields, current.String())
	}
	return fields
}

// expandLineRanges expands "2,5-7" into [2 5 6 7].
func expandLineRanges(spec string) ([]int, error) {
	var lines []int

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if from, to, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(from))
			if err != nil {
				return nil, fmt.Errorf("invalid highlight range %q", part)
			}
			end, err := strconv.Atoi(strings.TrimSpace(to))
			if err != nil || end < start || start < 1 {
				return nil, fmt.Errorf("invalid highlight range %q", part)
			}
			for n := start; n <= end; n++ {
				lines = append(lines, n)
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid highlight line %q", part)
		}
		lines = append(lines, n)
	}

	return lines, nil
}
