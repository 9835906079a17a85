package cmd

import (
	"github.com/spf13/cobra"

	"ccu/internal/cli"
	"ccu/internal/reconciler"
)

var (
	updateReset  bool
	updateOutput string
)

// updateCmd runs one reconciliation pass outside the recovery listener.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run one reconciliation pass",
	Long: `Runs a single reconciliation pass over the loaded modules and writes the
resulting define symbols back to the project settings.

A project without the enabling symbol is bootstrapped first: only the
enabling symbol is added and dependencies are harvested after the next
compile.

With --reset every dependency-managed define is removed regardless of
whether its class is loaded.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return cli.ValidateOutputFormat(updateOutput)
	},
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	application, err := newApplication(cmd)
	if err != nil {
		return err
	}

	mode := reconciler.ModeNormal
	if updateReset {
		mode = reconciler.ModeReset
	}
	res, err := application.Update(cmd.Context(), mode)
	if err != nil {
		return err
	}
	return cli.NewPrinter(cmd.OutOrStdout(), cli.OutputFormat(updateOutput)).PrintPass(res)
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVar(&updateReset, "reset", false, "Remove every dependency-managed define")
	updateCmd.Flags().StringVarP(&updateOutput, "output", "o", "table", "Output format (table, json, yaml)")
}
