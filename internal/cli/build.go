package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/frontcamp/proj2gpt"
	"github.com/frontcamp/proj2gpt/internal/config"
	"github.com/frontcamp/proj2gpt/internal/logger"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run a build of the current project",
	Long: `Reads proj2gpt.ini from the project root (falling back to defaults when
absent), packs the matching files into container files, and writes the
build directory with its manifest and diff.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	fsys := afero.NewOsFs()

	settings, err := config.Load(fsys, rootDir)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	cmd.Printf("%s v%s: %s\n", rootCmd.Use, version, settings.ProjectTitle)
	if logger.IsVerbose() {
		cmd.Println(settings.Summary())
	}

	engine, err := proj2gpt.New(rootDir, settings.Engine(), proj2gpt.WithFs(fsys))
	if err != nil {
		return fmt.Errorf("configure build: %w", err)
	}

	build, err := engine.Build()
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	logger.Info("build written to %s", build.Dir)

	cmd.Println(build.Summary())
	cmd.Print(build.DiffReport())
	return nil
}
