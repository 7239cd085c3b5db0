package marketing

import (
	"strings"
	"unicode"
)

// ParseFields extracts a loose "Key: value" overlay from generated
// text. It never fails: output that matches nothing yields nil and
// callers fall back to the raw text. Keys are normalized to
// lower_snake_case.
func ParseFields(text string) map[string]string {
	fields := make(map[string]string)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = strings.ReplaceAll(line, "**", "")

		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" || value == "" || len(key) > 40 {
			continue
		}
		// A key is a short label, not a sentence fragment.
		if strings.Count(key, " ") > 4 {
			continue
		}
		if !startsAlphanumeric(key) {
			continue
		}

		fields[normalizeKey(key)] = value
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func normalizeKey(key string) string {
	key = strings.ToLower(key)
	var b strings.Builder
	lastUnderscore := false
	for _, r := range key {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

func startsAlphanumeric(s string) bool {
	for _, r := range s {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}

// GenerateHashtags derives up to max hashtags from promotional text,
// skipping short filler words.
func GenerateHashtags(text string, max int) []string {
	seen := make(map[string]bool)
	var tags []string

	for _, word := range strings.Fields(text) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(word) < 4 {
			continue
		}
		tag := "#" + strings.ToLower(word)
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) >= max {
			break
		}
	}
	return tags
}
