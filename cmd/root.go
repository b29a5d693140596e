package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ak0r/zero-theme/config"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zero",
	Short: "Static site builder for Obsidian vaults",
	Long: `Zero renders an Obsidian vault of posts, projects, docs and pages
into a static website.`,
	SilenceUsage: true,
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.zero.yaml or $HOME/.zero.yaml)")
	flags.StringP("content-dir", "c", "", "Vault content directory")
	flags.StringP("output", "O", "", "Build directory")

	for key, flag := range map[string]string{
		config.KeyContentDirectory: "content-dir",
		config.KeyBuildDirectory:   "output",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Working directory first, then home.
		if dir, err := os.Getwd(); err == nil {
			viper.AddConfigPath(dir)
		}
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".zero")
	}

	viper.SetEnvPrefix("zero")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	err := viper.ReadInConfig()
	switch {
	case err == nil:
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	case cfgFile != "":
		// An explicitly named file must exist and parse.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
