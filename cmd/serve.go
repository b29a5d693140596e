package cmd

import (
	"github.com/ak0r/zero-theme/cmd/serve"
	"github.com/ak0r/zero-theme/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve the build directory",
	RunE:  serve.RunServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", config.DefaultServeAddr(), "Listen address")
	serveCmd.Flags().BoolP("watch", "w", false, "Rebuild when the vault changes")
	serveCmd.Flags().Bool("drafts", false, "Include draft entries")

	err := viper.BindPFlag(config.KeyServeAddr, serveCmd.Flags().Lookup("addr"))
	if err != nil {
		panic(err)
	}
}
