package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontcamp/proj2gpt"
	"github.com/frontcamp/proj2gpt/internal/config"
	"github.com/frontcamp/proj2gpt/internal/logger"
)

// runCLI executes the root command with the given arguments and returns
// its combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func TestBuildCmd_PacksProject(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"readme.md": "# hello\n",
		"notes.txt": "remember\n",
	})

	out, err := runCLI(t, "build", "--root", dir)
	require.NoError(t, err)

	assert.Contains(t, out, config.DefaultTitle)
	assert.Contains(t, out, "2 files in 1 groups")
	assert.Contains(t, out, proj2gpt.NoDifferences)

	container := filepath.Join(dir, proj2gpt.DefaultDestDir)
	entries, err := os.ReadDir(container)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(container, entries[0].Name(), "context.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `[## BEGIN FILE: "/readme.md" ##]`)
}

func TestBuildCmd_ReadsConfigFile(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"proj2gpt.ini": "[project]\nproject_title = Billing\n\n[traversal]\nnames_allowed = *.go;\n",
		"main.go":      "package main\n",
		"readme.md":    "ignored by allow list\n",
	})

	out, err := runCLI(t, "build", "--root", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Billing")
	assert.Contains(t, out, "1 files in 1 groups")
}

func TestBuildCmd_BadConfigFails(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"proj2gpt.ini": "[unterminated\n",
	})

	out, err := runCLI(t, "build", "--root", dir)
	require.Error(t, err)
	assert.Contains(t, out, "load configuration")
}

func TestBuildCmd_VerboseShowsSettingsAndLog(t *testing.T) {
	logBuf := new(bytes.Buffer)
	logger.SetOutput(logBuf)
	defer func() {
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
		verbose = false
	}()

	dir := writeProject(t, map[string]string{
		"readme.md": "# hello\n",
	})

	out, err := runCLI(t, "build", "--root", dir, "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, "Settings:")
	assert.Contains(t, out, "names_allowed:")
	assert.Contains(t, logBuf.String(), "[INFO] build written to")
}

func TestRootCmd_DefaultsToBuild(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"readme.md": "# hello\n",
	})

	out, err := runCLI(t, "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 files in 1 groups")
}
