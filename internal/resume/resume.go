// Package resume loads the résumé document served by the API.
package resume

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-match/internal/schemas"
	"github.com/jonathan/resume-match/internal/types"
	schemafiles "github.com/jonathan/resume-match/schemas"
)

//go:embed default.json
var defaultResume []byte

// Default returns the built-in sample résumé.
func Default() (*types.Resume, error) {
	return parse(defaultResume, "(embedded)")
}

// Load reads a résumé JSON file and validates it against the résumé schema.
// An empty path returns the built-in sample.
func Load(path string) (*types.Resume, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*types.Resume, error) {
	if err := schemas.ValidateBytes(schemafiles.Resume(), data); err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", source, err)
	}

	var r types.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse resume %s: %w", source, err)
	}
	return &r, nil
}
