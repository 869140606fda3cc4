package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	noColor    bool
	quiet      bool
	verbose    bool
)

// rootCmd runs a backup when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vkbackup",
	Short: "Back up VK profile photos to Yandex Disk",
	Long: `vkbackup copies the profile photos of a VK user to Yandex Disk.

For every photo the largest available size is chosen and Yandex Disk is asked
to fetch it by URL into a folder named after the user. The uploaded file names
and size types are recorded in a local JSON manifest (result.json by default).

Tokens, user id and photo count may come from flags, environment variables
(VKBACKUP_*), a config file or stored credentials. Anything missing is asked
for interactively.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetColor(!noColor && os.Getenv("NO_COLOR") == "")
		if quiet {
			ui.SetQuiet(true)
		}

		if cmd.Name() != "version" && cmd.Name() != "help" {
			ui.PrintBanner()
		}
	},
	RunE: runBackup,
}

// Execute runs the root command and exits with status 1 on any error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printFailure(err)
		os.Exit(1)
	}
}

// printFailure reports err in red together with its category
func printFailure(err error) {
	if kind := errs.TypeOf(err); kind != "" {
		ui.PrintError(fmt.Sprintf("Backup failed (%s error)", kind), err.Error())
		return
	}
	ui.PrintError("Error", err.Error())
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.config/vkbackup/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug logs and per-photo progress")

	// Version template
	rootCmd.SetVersionTemplate(`vkbackup {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
