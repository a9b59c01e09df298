package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-match/internal/ingestion"
	"github.com/jonathan/resume-match/internal/matching"
	"github.com/jonathan/resume-match/internal/observability"
	"github.com/jonathan/resume-match/internal/resume"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a résumé against a job's skills",
	Long: `Score a résumé JSON file against target skills. Targets are given with --skills
or extracted from a job description file with --job. Without --resume the
built-in sample résumé is used.`,
	RunE: runMatch,
}

var (
	matchResumeFile string
	matchSkills     []string
	matchJobFile    string
	matchOutputFile string
)

func init() {
	matchCmd.Flags().StringVarP(&matchResumeFile, "resume", "r", "", "Path to résumé JSON file")
	matchCmd.Flags().StringSliceVarP(&matchSkills, "skills", "s", nil, "Comma-separated target skills")
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to job description file to extract target skills from")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	matchCmd.MarkFlagsMutuallyExclusive("skills", "job")
	matchCmd.MarkFlagsOneRequired("skills", "job")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if (len(matchSkills) == 0) == (matchJobFile == "") {
		return fmt.Errorf("exactly one of --skills or --job is required")
	}

	r, err := resume.Load(matchResumeFile)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	targets := make([]string, 0, len(matchSkills))
	for _, s := range matchSkills {
		if s = strings.TrimSpace(s); s != "" {
			targets = append(targets, s)
		}
	}

	if matchJobFile != "" {
		vocabulary, err := loadVocabulary()
		if err != nil {
			return err
		}
		text, err := ingestion.ReadDocument(matchJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		targets = vocabulary.Extract(text)
	}

	result := matching.MatchResume(r, targets)
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintMatchResult(&result)
	}

	return writeJSON(cmd, matchOutputFile, result)
}
