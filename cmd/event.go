package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ccu/internal/cli"
	"ccu/internal/host"
	"ccu/internal/recovery"
	"ccu/internal/store"
)

var (
	eventOutput      string
	eventDiagnostics string
)

// eventCmd delivers one host lifecycle event to the recovery listener.
// Listener state persists in the state file, so hosts can call it once per
// event without keeping a process alive.
var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Deliver a host lifecycle event",
	Long: `Delivers one host lifecycle event to the recovery listener.

  ccu event reload      after the host finished reloading modules
  ccu event compiled    after a compile, reading the diagnostics file`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cli.ValidateOutputFormat(eventOutput)
	},
}

var eventReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Modules finished reloading",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication(cmd)
		if err != nil {
			return err
		}
		return printOutcome(cmd, application.Reload(cmd.Context()))
	},
}

var eventCompiledCmd = &cobra.Command{
	Use:   "compiled",
	Short: "A compile finished",
	Long: `Delivers a compilation-finished event. Diagnostics are read from the
configured diagnostics file, or from --diagnostics when given. A missing
file means a clean compile.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication(cmd)
		if err != nil {
			return err
		}

		var diags []host.Diagnostic
		if eventDiagnostics != "" {
			diags, err = store.NewDiagnosticsFile(eventDiagnostics).Read()
			if err != nil {
				return err
			}
			if diags == nil {
				diags = []host.Diagnostic{}
			}
		}
		return printOutcome(cmd, application.Compiled(cmd.Context(), diags))
	},
}

func printOutcome(cmd *cobra.Command, out recovery.Outcome) error {
	if err := cli.NewPrinter(cmd.OutOrStdout(), cli.OutputFormat(eventOutput)).PrintOutcome(out); err != nil {
		return err
	}
	if out.Err != nil && !recovery.IsPassInProgress(out.Err) {
		return fmt.Errorf("%s: %w", out.Action, out.Err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventReloadCmd)
	eventCmd.AddCommand(eventCompiledCmd)
	eventCmd.PersistentFlags().StringVarP(&eventOutput, "output", "o", "table", "Output format (table, json, yaml)")
	eventCompiledCmd.Flags().StringVar(&eventDiagnostics, "diagnostics", "", "Diagnostics file to read instead of the configured one")
}
