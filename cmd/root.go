package cmd

import (
	"fmt"
	"os"

	"smartwarga/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "smartwarga",
	Short: "SmartWarga Resident Sync Service",
	Long: `SmartWarga keeps a neighborhood resident registry and mirrors it to a
Google Sheet. It serves the registry over HTTP and syncs in both directions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// CLI failures are printed with the console encoder and ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
