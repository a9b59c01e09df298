package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-match/internal/skills"
	"github.com/spf13/cobra"
)

// loadVocabulary resolves the vocabulary from --vocabulary, then SKILLS_PATH,
// then the built-in skills.
func loadVocabulary() (*skills.Vocabulary, error) {
	path := vocabularyPath
	if path == "" {
		path = os.Getenv("SKILLS_PATH")
	}
	return loadVocabularyFrom(path)
}

// loadVocabularyFrom loads the vocabulary file at path, or the built-in
// skills when path is empty.
func loadVocabularyFrom(path string) (*skills.Vocabulary, error) {
	if path == "" {
		return skills.Default(), nil
	}

	vocabulary, err := skills.LoadVocabulary(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	return vocabulary, nil
}

// writeJSON writes v as indented JSON to outPath, or to the command's output
// when outPath is empty.
func writeJSON(cmd *cobra.Command, outPath string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if outPath == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return err
	}

	if err := os.WriteFile(outPath, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", outPath)
	return nil
}
