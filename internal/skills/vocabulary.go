// Package skills recognises known technology keywords in free text.
package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v4"
)

// defaultSkills is the built-in vocabulary used when no vocabulary file is configured.
var defaultSkills = []string{
	"javascript", "react", "html", "css", "python", "flask", "sql",
	"postgres", "postgresql", "git", "rest", "apis", "api",
	"docker", "aws", "vite", "redux", "typescript",
}

// Vocabulary is an immutable set of lowercase skill tokens.
// It is safe for concurrent use once constructed.
type Vocabulary struct {
	set    map[string]struct{}
	sorted []string
}

// NewVocabulary builds a vocabulary from the given skills.
// Entries are trimmed and lower-cased; empty entries and duplicates are dropped.
func NewVocabulary(skills []string) *Vocabulary {
	v := &Vocabulary{
		set:    make(map[string]struct{}, len(skills)),
		sorted: make([]string, 0, len(skills)),
	}
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := v.set[s]; ok {
			continue
		}
		v.set[s] = struct{}{}
		v.sorted = append(v.sorted, s)
	}
	sort.Strings(v.sorted)
	return v
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	return NewVocabulary(defaultSkills)
}

// Contains reports whether token is in the vocabulary. The token must already be normalized.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.set[token]
	return ok
}

// Len returns the number of skills in the vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.sorted)
}

// Skills returns a sorted copy of the vocabulary.
func (v *Vocabulary) Skills() []string {
	out := make([]string, len(v.sorted))
	copy(out, v.sorted)
	return out
}

// vocabularyFile is the on-disk format of a vocabulary file
type vocabularyFile struct {
	Skills []string `json:"skills" yaml:"skills"`
}

// LoadVocabulary reads a vocabulary from a YAML (.yaml, .yml) or JSON file
// containing a top-level "skills" list.
func LoadVocabulary(path string) (*Vocabulary, error) {
	if path == "" {
		return nil, fmt.Errorf("vocabulary path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	var file vocabularyFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse vocabulary YAML %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse vocabulary JSON %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported vocabulary file extension: %s", filepath.Ext(path))
	}

	for _, s := range file.Skills {
		// Extraction works on whitespace-delimited tokens, so multi-word entries could never match.
		if strings.ContainsFunc(strings.TrimSpace(s), unicode.IsSpace) {
			return nil, fmt.Errorf("vocabulary entry %q contains whitespace", s)
		}
	}

	v := NewVocabulary(file.Skills)
	if v.Len() == 0 {
		return nil, fmt.Errorf("vocabulary file %s contains no skills", path)
	}
	return v, nil
}
