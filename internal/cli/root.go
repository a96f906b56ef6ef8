package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "stowgate",
	Short: "Authorization-gated addressing gateway for S3 object storage",
}

func Execute() error { return rootCmd.Execute() }

func init() {
	home, _ := os.UserHomeDir()
	defaultCfg := filepath.Join(home, ".stowgate", "config.yaml")

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "config file path")

	rootCmd.AddCommand(cmdServe(), cmdVersion())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}
