package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ak0r/zero-theme/building"
	"github.com/ak0r/zero-theme/config"
	"github.com/spf13/cobra"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the vault into the build directory",
	Long: `Build renders every changed entry together with the list, collection,
archive and tag pages, and copies the referenced attachments.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().Bool("clean", false, "Remove the build directory before building")
	buildCmd.Flags().Bool("drafts", false, "Include draft entries")
}

func runBuild(cmd *cobra.Command, args []string) error {
	settings, err := config.Current()
	if err != nil {
		return err
	}

	isCleanBuild, err := cmd.Flags().GetBool("clean")
	if err != nil {
		return err
	}

	includeDrafts, err := cmd.Flags().GetBool("drafts")
	if err != nil {
		return err
	}

	opts := building.NewOptions(settings)
	opts.Clean = isCleanBuild
	opts.IncludeDrafts = includeDrafts

	fmt.Printf("content directory: %s\n", opts.ContentDirectory)
	fmt.Printf("build directory:   %s\n", opts.BuildDirectory)

	result, err := building.Build(opts)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	green.Printf("rendered %d entries, wrote %d assets\n", result.Rendered, result.Assets)
	if result.Failed > 0 {
		red.Printf("%d documents failed\n", result.Failed)
		return fmt.Errorf("%d documents failed to render", result.Failed)
	}

	return nil
}
