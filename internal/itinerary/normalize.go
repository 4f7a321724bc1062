// Package itinerary turns free-form generated itinerary text into a
// strictly-shaped day structure and merges enrichment data into a final
// itinerary record.
package itinerary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tripgpt/planning-platform/internal/model"
)

// headingPattern matches a day heading line: the word "Jour"
// (case-insensitive), the day number, an optional ":" or "."
// separator, and an optional title on the same line.
var headingPattern = regexp.MustCompile(`(?i)^\s*jour\s+(\d+)\s*[:.]?\s*(.*)$`)

// PlaceholderDescription fills days the generated text did not cover.
const PlaceholderDescription = "Détails à compléter"

// DefaultTitle returns the fallback title for a day without one.
func DefaultTitle(number int) string {
	return fmt.Sprintf("Jour %d", number)
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineHeading
	lineDetail
)

// classify tags a line as blank, heading, or detail. For headings it
// also returns the parsed day number and the trailing title text.
func classify(line string) (lineKind, int, string) {
	if strings.TrimSpace(line) == "" {
		return lineBlank, 0, ""
	}
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return lineHeading, n, strings.TrimSpace(m[2])
		}
	}
	return lineDetail, 0, ""
}

// Parse segments raw text into day entries in encounter order. Day
// numbers are taken verbatim from the text: duplicates and gaps pass
// through. Detail lines seen before the first heading are discarded.
func Parse(raw string) []model.Day {
	var (
		days    []model.Day
		current *model.Day
	)

	for _, line := range strings.Split(raw, "\n") {
		kind, number, title := classify(line)
		switch kind {
		case lineHeading:
			if current != nil {
				days = append(days, *current)
			}
			if title == "" {
				title = DefaultTitle(number)
			}
			current = &model.Day{Number: number, Title: title}
		case lineDetail:
			if current == nil {
				continue
			}
			text := strings.TrimSpace(line)
			if strings.HasPrefix(text, "- ") || strings.HasPrefix(text, "* ") {
				text = text[2:]
			}
			current.Description += text + "\n"
		}
	}

	if current != nil {
		days = append(days, *current)
	}

	return days
}

// Normalize parses raw itinerary text and reconciles the result against
// the day count the caller committed to: extra days are truncated in
// parse order, missing days are padded with placeholders so that the
// returned slice always has exactly requestedDays entries. Parsed day
// numbers are not renumbered. Never fails; malformed input degrades to
// placeholders.
func Normalize(raw string, requestedDays int) []model.Day {
	if requestedDays < 0 {
		requestedDays = 0
	}

	days := Parse(raw)

	if len(days) > requestedDays {
		return days[:requestedDays]
	}

	for n := len(days) + 1; n <= requestedDays; n++ {
		days = append(days, model.Day{
			Number:      n,
			Title:       DefaultTitle(n),
			Description: PlaceholderDescription,
		})
	}

	return days
}
