package cmd

import (
	"fmt"

	"github.com/ak0r/zero-theme/building"
	"github.com/ak0r/zero-theme/config"
	"github.com/ak0r/zero-theme/filesystem"
	"github.com/spf13/cobra"
)

// syncAttachmentsCmd represents the sync-attachments command
var syncAttachmentsCmd = &cobra.Command{
	Use:   "sync-attachments",
	Short: "Copy changed vault attachments into the build directory",
	RunE:  runSyncAttachments,
}

func init() {
	rootCmd.AddCommand(syncAttachmentsCmd)
}

func runSyncAttachments(cmd *cobra.Command, args []string) error {
	settings, err := config.Current()
	if err != nil {
		return err
	}

	opts := building.NewOptions(settings)

	n, err := filesystem.SyncAttachments(opts.ContentDirectory, opts.BuildDirectory)
	if err != nil {
		return err
	}

	fmt.Printf("synced %d attachments\n", n)

	return nil
}
