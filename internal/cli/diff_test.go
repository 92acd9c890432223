package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontcamp/proj2gpt"
)

func TestDiffCmd_NoBuilds(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"readme.md": "# hello\n",
	})

	_, err := runCLI(t, "diff", "--root", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, proj2gpt.ErrNoBuilds)
}

func TestDiffCmd_PrintsNewestReport(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"readme.md": "# hello\n",
	})

	_, err := runCLI(t, "build", "--root", dir)
	require.NoError(t, err)

	out, err := runCLI(t, "diff", "--root", dir)
	require.NoError(t, err)
	assert.Equal(t, proj2gpt.NoDifferences+"\n", out)
}
