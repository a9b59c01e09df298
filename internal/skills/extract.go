package skills

import (
	"sort"
	"strings"
)

// tokenPunctuation is stripped from both ends of every token before lookup.
const tokenPunctuation = ".,():;"

// NormalizeToken strips surrounding punctuation from a token and lower-cases it.
func NormalizeToken(token string) string {
	return strings.ToLower(strings.Trim(token, tokenPunctuation))
}

// Extract returns the vocabulary skills that appear as whole tokens in text,
// sorted ascending and without duplicates. It never returns nil.
func (v *Vocabulary) Extract(text string) []string {
	found := make(map[string]struct{})
	for _, token := range strings.Fields(text) {
		normalized := NormalizeToken(token)
		if normalized == "" {
			continue
		}
		if v.Contains(normalized) {
			found[normalized] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}
