package main

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"vkbackup/pkg/auth"
	"vkbackup/pkg/backup"
	"vkbackup/pkg/config"
	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
	"vkbackup/pkg/ui"
)

var (
	// Backup command flags
	userID       string
	photoCount   int
	manifestPath string
	namingPolicy string
	accountName  string
)

// backupCmd is the explicit form of running vkbackup without a subcommand
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up VK profile photos to Yandex Disk",
	Long: `Back up the profile photos of a VK user to Yandex Disk.

The following inputs are required and are asked for when not supplied by a
flag, the environment, the config file or a stored account:
  - VK access token
  - Yandex Disk OAuth token
  - VK user id
  - Number of photos (press Enter for 5)`,
	Example: `  # Interactive run
  vkbackup

  # Back up the last 10 profile photos of user 1
  vkbackup backup --user 1 --count 10

  # Use a stored account and name files by photo id
  vkbackup backup --account work --naming id

  # Write the manifest somewhere else
  vkbackup backup -o ./backups/result.json`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)

	addBackupFlags(backupCmd)
	// Running without a subcommand accepts the same flags
	addBackupFlags(rootCmd)
}

func addBackupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&userID, "user", "", "VK user id whose profile photos are backed up")
	cmd.Flags().IntVar(&photoCount, "count", 0, "number of photos to back up (default 5 when prompted)")
	cmd.Flags().StringVarP(&manifestPath, "output", "o", "", "manifest path (default result.json)")
	cmd.Flags().StringVar(&namingPolicy, "naming", "", "file naming policy (likes, likes_date, id, index)")
	cmd.Flags().StringVarP(&accountName, "account", "a", "", "use specific stored account")
}

func runBackup(cmd *cobra.Command, args []string) error {
	flags := make(map[string]interface{})
	if userID != "" {
		flags["user"] = userID
	}
	if photoCount != 0 {
		if photoCount < 0 {
			return errs.Input("photo count must be positive, got "+strconv.Itoa(photoCount), nil)
		}
		flags["count"] = photoCount
	}
	if manifestPath != "" {
		flags["output"] = manifestPath
	}
	if namingPolicy != "" {
		flags["naming"] = namingPolicy
	}
	if verbose {
		flags["log-level"] = "debug"
	} else if logLevel != "" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return errs.Config("failed to load configuration", err)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return errs.Config("failed to initialize logger", err)
	}
	log := logger.GetLogger().WithField("version", version)
	log.Debug("vkbackup starting")

	if err := applyStoredAccount(cfg, accountName); err != nil {
		return err
	}

	prompter := ui.NewPrompter(os.Stdin, ui.Output())
	if err := resolveInputs(cfg, prompter); err != nil {
		return err
	}

	ui.PrintInfo("VK user", cfg.Backup.UserID)
	ui.PrintInfo("Photos requested", strconv.Itoa(cfg.Backup.PhotoCount))

	progress := ui.NewProgressDisplay("Uploading", verbose)
	b, err := backup.NewFromConfig(cfg, progress, log)
	if err != nil {
		return err
	}

	summary, err := b.Run(context.Background())
	if err != nil {
		return err
	}

	ui.PrintInfo("Folder", summary.Folder)
	ui.PrintInfo("Manifest", summary.ManifestPath)
	ui.PrintInfo("Duration", ui.FormatDuration(summary.Duration))
	return nil
}

// applyStoredAccount fills missing tokens from the credential store. A named
// account must exist; the default account is optional.
func applyStoredAccount(cfg *config.Config, name string) error {
	if name == "" && cfg.VK.Token != "" && cfg.Disk.Token != "" {
		return nil
	}

	manager, err := auth.NewManager()
	if err != nil {
		if name != "" {
			return errs.Config("failed to initialize credential manager", err)
		}
		logger.WithError(err).Debug("Credential manager unavailable")
		return nil
	}

	return applyAccountFrom(manager, cfg, name)
}

func applyAccountFrom(manager *auth.Manager, cfg *config.Config, name string) error {
	var account *auth.Account
	var err error
	if name != "" {
		account, err = manager.Retrieve(name)
		if err != nil {
			return errs.Config("stored account "+strconv.Quote(name)+" not found", err)
		}
	} else {
		account, err = manager.RetrieveDefault()
		if err != nil {
			if !errors.Is(err, auth.ErrCredentialsNotFound) {
				logger.WithError(err).Warn("Failed to read stored credentials")
			}
			return nil
		}
	}

	account.Apply(cfg)
	logger.WithField("account", account.Name).Debug("Using stored account")
	return nil
}

// inputReader is the part of ui.Prompter used to ask for missing inputs
type inputReader interface {
	ReadLine(prompt string) (string, error)
	ReadSecret(prompt string) (string, error)
	ReadPhotoCount(prompt string) (int, error)
}

// resolveInputs prompts for every run input cfg does not already carry, in
// the order VK token, Yandex Disk token, user id, photo count
func resolveInputs(cfg *config.Config, in inputReader) error {
	var err error

	if cfg.VK.Token == "" {
		if cfg.VK.Token, err = in.ReadSecret("VK access token: "); err != nil {
			return err
		}
	}
	if cfg.Disk.Token == "" {
		if cfg.Disk.Token, err = in.ReadSecret("Yandex Disk token: "); err != nil {
			return err
		}
	}
	if cfg.Backup.UserID == "" {
		if cfg.Backup.UserID, err = in.ReadLine("VK user id: "); err != nil {
			return err
		}
	}
	if cfg.Backup.PhotoCount == 0 {
		prompt := "Number of photos to back up [" + strconv.Itoa(config.DefaultPhotoCount) + "]: "
		if cfg.Backup.PhotoCount, err = in.ReadPhotoCount(prompt); err != nil {
			return err
		}
	}

	return nil
}
