package cmd

import (
	"fmt"

	"github.com/ak0r/zero-theme/config"
	"github.com/ak0r/zero-theme/images"
	"github.com/spf13/cobra"
)

// coverCmd represents the cover command
var coverCmd = &cobra.Command{
	Use:   "cover IMAGE",
	Short: "Generate a square cover image",
	Long: `Cover images are square images referenced by the image field of an
entry and are displayed on list, collection and tag pages.`,
	Args: cobra.ExactArgs(1),
	RunE: runCover,
}

func init() {
	rootCmd.AddCommand(coverCmd)

	coverCmd.Flags().StringP("output", "o", "cover.jpg", "Output filename")
	coverCmd.Flags().IntP("size", "s", config.DefaultCoverSize(), "Cover image width, height")
}

func runCover(cmd *cobra.Command, args []string) error {
	outputFilePath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	size, err := cmd.Flags().GetInt("size")
	if err != nil {
		return err
	}

	if size <= 0 {
		return fmt.Errorf("invalid cover size %d", size)
	}

	if err := images.MakeCover(args[0], outputFilePath, size); err != nil {
		return err
	}

	fmt.Printf("Created %dx%d cover image '%s'\n", size, size, outputFilePath)

	return nil
}
