package parsing

import (
	"strings"
)

// MaxRequirements caps how many requirement items are collected from one section
const MaxRequirements = 10

// maxRequirementLength drops paragraph-sized lines that are not list items
const maxRequirementLength = 200

// requirementHeaders open a requirements section
var requirementHeaders = []string{
	"requirements", "qualifications", "what you'll need", "what you will need",
	"what we're looking for", "what we are looking for", "skills", "must have", "must-have",
}

// sectionHeaders close a requirements section
var sectionHeaders = []string{
	"responsibilities", "what you'll do", "what you will do", "benefits", "perks",
	"about us", "about the company", "about the role", "compensation", "how to apply",
	"nice to have", "bonus points",
}

// ParseRequirements collects requirement items from a job posting.
//
// The scanner starts searching for a requirements header, then collects bullet
// or short lines until a different section header, a blank line after at least
// one item, or MaxRequirements items. Text after the header on the same line
// ("Requirements: Go, SQL") counts as an item.
func ParseRequirements(text string) []string {
	state := stateSearching
	items := make([]string, 0, MaxRequirements)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		switch state {
		case stateSearching:
			rest, ok := matchHeader(line, requirementHeaders)
			if !ok {
				continue
			}
			state = stateCollecting
			if rest != "" {
				items = append(items, rest)
			}

		case stateCollecting:
			if line == "" {
				if len(items) > 0 {
					state = stateDone
				}
				continue
			}
			if _, ok := matchHeader(line, sectionHeaders); ok {
				state = stateDone
				continue
			}
			if _, ok := matchHeader(line, requirementHeaders); ok {
				continue
			}
			item := trimBullet(line)
			if item == "" || len(item) > maxRequirementLength {
				continue
			}
			items = append(items, item)
		}

		if len(items) >= MaxRequirements {
			items = items[:MaxRequirements]
			state = stateDone
		}
		if state == stateDone {
			break
		}
	}

	return items
}

// matchHeader reports whether line is a header from the list. A header is the
// keyword alone or followed by ':'; anything after the colon is returned.
func matchHeader(line string, headers []string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "#*")))
	lower = strings.TrimSpace(lower)
	for _, h := range headers {
		if !strings.HasPrefix(lower, h) {
			continue
		}
		rest := strings.TrimSpace(lower[len(h):])
		if rest == "" {
			return "", true
		}
		if strings.HasPrefix(rest, ":") {
			// return the remainder with original casing
			idx := strings.Index(line, ":")
			return strings.TrimSpace(line[idx+1:]), true
		}
	}
	return "", false
}

func trimBullet(line string) string {
	line = strings.TrimLeft(line, "-*•·–▪◦> \t")
	// numbered bullets: "1." "2)"
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = line[i+1:]
	}
	return strings.TrimSpace(line)
}
