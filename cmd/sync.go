package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	sheetSync "smartwarga/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync commands
	dryRunPull     bool
	yesConfirm     bool
	exportOutput   string
	credentialFile string
)

// syncCmd is the parent command for spreadsheet operations.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize residents with the connected Google Sheet",
	Long: `Run spreadsheet operations against the configured sheet without the server.

Examples:
  # Preview a pull
  sync pull --dry-run

  # Pull rows into the registry
  sync pull

  # Overwrite the sheet with the registry (asks for confirmation)
  sync push

  # Write the registry to a CSV file
  sync export -o warga.csv

  # Check a sheet before connecting it
  sync test https://docs.google.com/spreadsheets/d/<id>/edit --credential key.json`,
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Import sheet rows (insert new NIKs, update newer rows)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(ctx context.Context, a *application) error {
			res := a.sync.Pull(ctx, sheetSync.PullOptions{DryRun: dryRunPull})
			printSyncResult(a.logger, res)
			if !res.Success {
				return fmt.Errorf("pull failed: %s", res.Message)
			}
			return nil
		})
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Overwrite the sheet with every resident",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(ctx context.Context, a *application) error {
			if !confirmDestructiveAction() {
				a.logger.Warn("Operation cancelled by user. No changes were made.")
				return nil
			}
			res := a.sync.Push(ctx)
			printSyncResult(a.logger, res)
			if !res.Success {
				return fmt.Errorf("push failed: %s", res.Message)
			}
			return nil
		})
	},
}

var syncExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every resident to a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(ctx context.Context, a *application) error {
			name, content, err := a.sync.Export(ctx)
			if err != nil {
				return fmt.Errorf("failed to export residents: %w", err)
			}
			if exportOutput != "" {
				name = exportOutput
			}
			if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
			a.logger.Info("Export written", zap.String("file", name))
			return nil
		})
	},
}

var syncTestCmd = &cobra.Command{
	Use:   "test <sheet-url>",
	Short: "Check that a sheet can be read (or written, with a credential)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var credential string
		if credentialFile != "" {
			raw, err := os.ReadFile(credentialFile)
			if err != nil {
				return fmt.Errorf("failed to read credential: %w", err)
			}
			credential = string(raw)
		}

		return withApplication(func(ctx context.Context, a *application) error {
			res := a.sync.Test(ctx, args[0], credential)
			fields := []zap.Field{zap.Bool("success", res.Success), zap.String("message", res.Message)}
			if res.Title != "" {
				fields = append(fields, zap.String("title", res.Title))
			}
			if res.RowCount != nil {
				fields = append(fields, zap.Int("rows", *res.RowCount), zap.Strings("headers", res.Headers))
			}
			a.logger.Info("Connection test", fields...)
			if !res.Success {
				return errors.New("connection test failed")
			}
			return nil
		})
	},
}

func init() {
	syncCmd.AddCommand(syncPullCmd, syncPushCmd, syncExportCmd, syncTestCmd)

	syncPullCmd.Flags().BoolVar(&dryRunPull, "dry-run", false, "Report planned changes without writing")
	syncPushCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the overwrite (non-interactive)")
	syncExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default sync_warga_<date>.csv)")
	syncTestCmd.Flags().StringVar(&credentialFile, "credential", "", "Service account JSON key file")

	RootCmd.AddCommand(syncCmd)
}

// withApplication loads configuration, wires the services and runs fn.
func withApplication(fn func(ctx context.Context, a *application) error) error {
	ctx := context.Background()

	cfg, l, err := loadConfig()
	if err != nil {
		return err
	}
	defer l.Sync()

	a, err := bootstrap(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer a.close()

	return fn(ctx, a)
}

// printSyncResult prints a formatted sync result using logger.
func printSyncResult(l *zap.Logger, res sheetSync.Result) {
	l.Info("Sync result",
		zap.Bool("success", res.Success),
		zap.Bool("dry_run", res.DryRun),
		zap.Int("pushed", res.RecordsPushed),
		zap.Int("pulled", res.RecordsPulled),
		zap.Int("updated", res.RecordsUpdated),
		zap.Int("failed", res.RecordsFailed),
		zap.String("message", res.Message),
	)

	// Show sample of actions (max 5 for logger)
	maxShow := 5
	if len(res.Actions) < maxShow {
		maxShow = len(res.Actions)
	}
	for i := 0; i < maxShow; i++ {
		action := res.Actions[i]
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("nik", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(res.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(res.Actions)-maxShow))
	}

	for _, detail := range res.Details {
		l.Warn("Row error", zap.String("detail", detail))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nPush replaces every row in the sheet. Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
