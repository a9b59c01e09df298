package main

import (
	"fmt"

	"github.com/jonathan/resume-match/internal/ingestion"
	"github.com/jonathan/resume-match/internal/observability"
	"github.com/jonathan/resume-match/internal/types"
	"github.com/spf13/cobra"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Extract known skills from a job description",
	Long:  "Extract known skills from a job description file (.txt, .md, .html, .pdf or .docx) or from text given on the command line.",
	RunE:  runParseJob,
}

var (
	parseInputFile  string
	parseText       string
	parseOutputFile string
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to job description file")
	parseJobCmd.Flags().StringVarP(&parseText, "text", "t", "", "Job description text")
	parseJobCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseJobCmd.MarkFlagsMutuallyExclusive("in", "text")
	parseJobCmd.MarkFlagsOneRequired("in", "text")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(cmd *cobra.Command, _ []string) error {
	if (parseInputFile == "") == (parseText == "") {
		return fmt.Errorf("exactly one of --in or --text is required")
	}

	vocabulary, err := loadVocabulary()
	if err != nil {
		return err
	}

	text := parseText
	if parseInputFile != "" {
		text, err = ingestion.ReadDocument(parseInputFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
	}

	found := vocabulary.Extract(text)
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSkills(found)
	}

	return writeJSON(cmd, parseOutputFile, types.ParseJobResponse{Skills: found})
}
