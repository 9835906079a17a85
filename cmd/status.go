package cmd

import (
	"github.com/spf13/cobra"

	"ccu/internal/cli"
)

var statusOutput string

// statusCmd shows what a pass would see without writing anything.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show symbols, modules and declared dependencies",
	Long: `Shows the selected build-target group, its define symbols, the loaded
modules, every declared optional dependency and whether its class resolves,
and the persisted recovery listener state. Nothing is written.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return cli.ValidateOutputFormat(statusOutput)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication(cmd)
		if err != nil {
			return err
		}
		report, err := application.Status()
		if err != nil {
			return err
		}
		return cli.NewPrinter(cmd.OutOrStdout(), cli.OutputFormat(statusOutput)).PrintStatus(report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format (table, json, yaml)")
}
