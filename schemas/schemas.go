// Package schemas embeds the JSON Schemas for documents the API loads from disk.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// ResumeSchema is the file name of the résumé document schema
const ResumeSchema = "resume.schema.json"

// Get returns the contents of an embedded schema file.
func Get(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %s not found: %w", name, err)
	}
	return data, nil
}

// Resume returns the résumé document schema.
func Resume() []byte {
	data, err := Get(ResumeSchema)
	if err != nil {
		panic(err)
	}
	return data
}
