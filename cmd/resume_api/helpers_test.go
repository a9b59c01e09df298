package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// newTestCommand returns a command whose stdout is captured in the buffer.
// Stderr is captured separately by newTestCommandWithStderr.
func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	cmd, out, _ := newTestCommandWithStderr()
	return cmd, out
}

func newTestCommandWithStderr() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetFlags restores the package-level flag variables after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("SKILLS_PATH", "")
	t.Cleanup(func() {
		vocabularyPath, verbose = "", false
		parseInputFile, parseText, parseOutputFile = "", "", ""
		matchResumeFile, matchSkills, matchJobFile, matchOutputFile = "", nil, "", ""
		tokenSubject = "dev"
		servePort, serveConfigFile = 0, ""
	})
}
