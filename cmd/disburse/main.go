package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/settleops/disburse/pkg/browser"
	"github.com/settleops/disburse/pkg/config"
	"github.com/settleops/disburse/pkg/prompt"
	"github.com/settleops/disburse/pkg/selection"
	"github.com/settleops/disburse/pkg/sheet"
	"github.com/settleops/disburse/pkg/transfer"
)

var (
	accountsFile string
	debug        bool
)

var rootCmd = &cobra.Command{
	Use:          "disburse <settlement-spreadsheet>",
	Short:        "Execute settlement disbursement transfers from a spreadsheet",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&accountsFile, "accounts", "a", "", "YAML file with account labels and numbers")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "disburse",
		Level:           level,
	})

	cfg, err := config.Build(accountsFile, cmd.Flags())
	if err != nil {
		return err
	}

	wb, err := sheet.Open(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	prompts := prompt.New(os.Stdin, os.Stdout)

	sheetName, err := prompts.SheetName(wb.SheetNames())
	if err != nil {
		return err
	}

	table, err := sheet.Load(wb, sheetName, logger)
	if err != nil {
		return err
	}
	logger.Debug("sheet loaded", "sheet", sheetName, "eligible_rows", len(table.Rows()))

	selector := selection.New(logger, table, prompts, os.Stdout)
	sel, err := selector.Select()
	if err != nil {
		return err
	}
	if sel.Len() == 0 {
		fmt.Println("No settlement cases selected, aborting transfer. Please select at least one row before executing a transfer.")
		return nil
	}

	for {
		more, err := prompts.YesNo("Would you like to add more rows before executing? (yes/no)")
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if err := selector.Append(sel); err != nil {
			return err
		}
	}

	sel.Deduplicate()
	fmt.Println(selection.Render(sel.Rows()))
	confirmed, err := prompts.YesNo("Would you like to execute transfers on these rows? (yes/no)")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Transfer not executed")
		return nil
	}

	fmt.Println("Executing transfers...")
	session, err := browser.NewChromeSession(cmd.Context(), cfg.DriverPath)
	if err != nil {
		return err
	}
	// Closed on every exit path, including mid-run failures.
	defer session.Close()

	executor := transfer.New(logger, cfg, session, prompts)
	if err := executor.Run(sel); err != nil {
		return err
	}

	logger.Info("all transfers completed", "rows", sel.Len())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
