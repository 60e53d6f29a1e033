// Package commands implements the CLI commands for xmark.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "xmark",
	Short: "Save X.com posts and articles as clean markdown",
	Long: `Xmark loads an X.com post or article in a headless browser, extracts
its readable content and writes a markdown file.

The browser handles dynamic loading: truncated text is expanded, the
dedicated article view is opened when one exists, and the page is
scrolled so lazily loaded content is present before extraction.

Examples:
  # Save a post to $HOME/tmp
  xmark save "https://x.com/someone/status/2011738838767423983"

  # Save into a different directory with a longer timeout
  xmark save -d ~/notes/clips --timeout 60s "https://x.com/someone/status/123"

  # Use a custom extraction profile
  xmark save --profile x-profile.yaml "https://x.com/someone/status/123"`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.xmark.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".xmark")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("XMARK")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
