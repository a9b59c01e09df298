package main

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-match/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResume = `{
  "contact": {"fullName": "Test Person"},
  "skills": ["Go", "PostgreSQL"],
  "experience": [
    {"title": "Engineer", "bullets": ["Built Docker images for API services", "Tuned PostgreSQL queries behind a REST API"]}
  ]
}`

func TestMatch_Skills(t *testing.T) {
	resetFlags(t)
	matchResumeFile = writeTestFile(t, "resume.json", testResume)
	matchSkills = []string{"postgresql", " docker ", "aws"}

	cmd, out := newTestCommand()
	require.NoError(t, runMatch(cmd, nil))

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, []string{"postgresql", "docker"}, result.Coverage.Matched)
	assert.Equal(t, []string{"aws"}, result.Coverage.Missing)
	assert.Equal(t, 67, result.Score)
	require.Len(t, result.TopBullets, 2)
	assert.Equal(t, "mentions: docker", result.TopBullets[0].Reason)
	assert.Equal(t, "mentions: postgresql", result.TopBullets[1].Reason)
}

func TestMatch_JobFile(t *testing.T) {
	resetFlags(t)
	matchResumeFile = writeTestFile(t, "resume.json", testResume)
	matchJobFile = writeTestFile(t, "job.txt", "We use Docker, AWS and PostgreSQL.")

	cmd, out := newTestCommand()
	require.NoError(t, runMatch(cmd, nil))

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	// Targets come out of extraction sorted
	assert.Equal(t, []string{"docker", "postgresql"}, result.Coverage.Matched)
	assert.Equal(t, []string{"aws"}, result.Coverage.Missing)
	assert.Equal(t, 67, result.Score)
}

func TestMatch_DefaultResume(t *testing.T) {
	resetFlags(t)
	matchSkills = []string{"python"}

	cmd, out := newTestCommand()
	require.NoError(t, runMatch(cmd, nil))

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 100, result.Score)
}

func TestMatch_Errors(t *testing.T) {
	t.Run("no targets", func(t *testing.T) {
		resetFlags(t)
		cmd, _ := newTestCommand()
		assert.ErrorContains(t, runMatch(cmd, nil), "exactly one of --skills or --job")
	})

	t.Run("invalid resume", func(t *testing.T) {
		resetFlags(t)
		matchResumeFile = writeTestFile(t, "resume.json", `{"skills": "python"}`)
		matchSkills = []string{"python"}
		cmd, _ := newTestCommand()
		assert.ErrorContains(t, runMatch(cmd, nil), "failed to load resume")
	})
}

func TestMatch_Verbose(t *testing.T) {
	resetFlags(t)
	verbose = true
	matchSkills = []string{"python", "kotlin"}

	cmd, out, errOut := newTestCommandWithStderr()
	require.NoError(t, runMatch(cmd, nil))

	assert.Contains(t, errOut.String(), "MATCH RESULT")
	assert.Contains(t, errOut.String(), "✗ kotlin")

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 50, result.Score)
}
