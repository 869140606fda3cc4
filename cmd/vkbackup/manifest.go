package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"vkbackup/pkg/config"
	"vkbackup/pkg/manifest"
	"vkbackup/pkg/ui"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the backup manifest",
}

var manifestShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "List the files recorded in a manifest",
	Long: `List the files recorded by the last backup.

Without a path the manifest path from the configuration is used
(result.json by default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runManifestShow,
}

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.AddCommand(manifestShowCmd)
}

func runManifestShow(cmd *cobra.Command, args []string) error {
	path := config.DefaultManifestPath
	if len(args) > 0 {
		path = args[0]
	} else if cfg, err := config.Load(configFile, nil); err == nil {
		path = cfg.Backup.ManifestPath
	}

	results, err := manifest.Read(path)
	if err != nil {
		return err
	}

	ui.PrintInfo("Manifest", path)
	ui.PrintInfo("Files", fmt.Sprintf("%d", len(results)))

	out := ui.Output()
	for i, r := range results {
		fmt.Fprintf(out, "%3d. %-24s %s\n", i+1, r.FileName, r.Size)
	}
	return nil
}
