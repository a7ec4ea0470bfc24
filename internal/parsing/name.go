package parsing

import (
	"strings"
	"unicode"
)

// maxNameLines bounds how many non-empty lines are inspected for a candidate name
const maxNameLines = 10

// nameSkipKeywords mark header lines that are never a person's name
var nameSkipKeywords = []string{
	"resume", "résumé", "curriculum", "vitae", "cv",
	"email", "e-mail", "phone", "mobile", "tel", "address",
	"linkedin", "github", "portfolio", "website",
	"objective", "summary", "profile", "experience", "education", "skills",
	"@", "http", "www.",
}

// GuessCandidateName returns the first plausible person name near the top of a resume,
// or "" when none is found within the first 10 non-empty lines.
// A name line has 2 to 4 purely alphabetic words (hyphens, apostrophes and dots allowed).
func GuessCandidateName(text string) string {
	state := stateSearching
	inspected := 0
	name := ""

	for _, line := range strings.Split(text, "\n") {
		if state == stateDone {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		inspected++
		if inspected > maxNameLines {
			state = stateDone
			break
		}

		if isSkippableNameLine(line) {
			continue
		}
		if words, ok := nameWords(line); ok {
			name = titleCase(words)
			state = stateDone
		}
	}

	return name
}

func isSkippableNameLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range nameSkipKeywords {
		if kw == "cv" || kw == "tel" {
			// short keywords must stand alone
			for _, w := range strings.Fields(lower) {
				if strings.Trim(w, ":.,") == kw {
					return true
				}
			}
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, r := range line {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func nameWords(line string) ([]string, bool) {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return nil, false
	}
	for _, w := range words {
		letters := 0
		for _, r := range w {
			switch {
			case unicode.IsLetter(r):
				letters++
			case r == '-' || r == '\'' || r == '.':
			default:
				return nil, false
			}
		}
		if letters == 0 {
			return nil, false
		}
	}
	return words, true
}

func titleCase(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		out[i] = string(runes)
	}
	return strings.Join(out, " ")
}
