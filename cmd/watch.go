package cmd

import (
	"github.com/spf13/cobra"
)

// watchCmd keeps ccu attached to a project.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch modules and diagnostics and reconcile continuously",
	Long: `Watches the modules directory and the diagnostics file. Every change to a
module manifest is treated as a completed module reload and every change
to the diagnostics file as a finished compile. Events are handled one at a
time by the recovery listener.

A reload event is queued at startup so the project is reconciled
immediately. Stops on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication(cmd)
		if err != nil {
			return err
		}
		return application.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
