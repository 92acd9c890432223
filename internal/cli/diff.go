package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/frontcamp/proj2gpt"
	"github.com/frontcamp/proj2gpt/internal/config"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show the newest build's diff report",
	Long: `Prints the diff report of the most recent build without running a new
one. The report lists the groups that were added, removed, or changed
relative to the build before it.`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, _ []string) error {
	fsys := afero.NewOsFs()

	settings, err := config.Load(fsys, rootDir)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	engine, err := proj2gpt.New(rootDir, settings.Engine(), proj2gpt.WithFs(fsys))
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}

	report, err := engine.LastDiff()
	if err != nil {
		if errors.Is(err, proj2gpt.ErrNoBuilds) {
			return fmt.Errorf("nothing to diff: %w", err)
		}
		return err
	}

	cmd.Print(report)
	return nil
}
