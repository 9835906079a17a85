package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ccu/internal/app"
	"ccu/internal/cli"
	"ccu/internal/config"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfigError indicates the ccu configuration is invalid.
	ExitCodeConfigError = 2
)

// Global flags shared by every subcommand.
var (
	projectDir string
	configPath string
	group      string
	logLevel   string
	debug      bool
	silent     bool
)

// rootCmd represents the base command for the ccu application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ccu",
	Short: "Keep conditional-compilation symbols in sync with loaded modules",
	Long: `ccu reconciles a project's scripting define symbols with the optional
dependencies its modules declare. A define is enabled while the class it
depends on is loaded and removed when that class disappears.

When a compile fails on unresolved types after a dependency was removed,
ccu strips every dependency-managed define once so the project can
recompile and recover.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	// Errors are reported by Execute.
	SilenceErrors: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "ccu version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(getExitCode(err))
	}
}

// reportError writes err for the user, followed by the detailed report
// when the configuration was invalid.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, cli.FormatError(err))
	var cfgErrs *config.ConfigurationErrorCollection
	if errors.As(err, &cfgErrs) {
		fmt.Fprintln(w, cfgErrs.GetDetailedReport())
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var cfgErrs *config.ConfigurationErrorCollection
	if errors.As(err, &cfgErrs) {
		return ExitCodeConfigError
	}
	var cfgErr config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ExitCodeConfigError
	}
	return ExitCodeError
}

// newApplication bootstraps the application from the global flags.
func newApplication(cmd *cobra.Command) (*app.Application, error) {
	cfg := app.NewConfig(debug, projectDir, configPath)
	cfg.Silent = silent
	cfg.LogLevel = logLevel
	cfg.Group = group
	cfg.LogOutput = cmd.ErrOrStderr()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project-dir", "C", "", "Project root (default is the current directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default is ccu.yaml in the project root)")
	rootCmd.PersistentFlags().StringVar(&group, "group", "", "Build-target group to reconcile instead of the selected one")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Minimum log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "Suppress log output")

	rootCmd.AddCommand(newVersionCmd())
}
