// Package main provides the entry point for the resume matching API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_api",
	Short: "Resume matching HTTP API server",
	Long:  "resume_api serves a résumé over HTTP, extracts known skills from job descriptions and scores how well a résumé covers them.",
}

var (
	vocabularyPath string
	verbose        bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&vocabularyPath, "vocabulary", "", "YAML or JSON skills file (default: SKILLS_PATH or built-in skills)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print a human-readable summary to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
