package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dixieflatline76/Expanse/config"
	"github.com/dixieflatline76/Expanse/util"
	"github.com/spf13/cobra"
)

var checkUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s %s\n", config.AppName, version())
		if !checkUpdate {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		info, err := util.CheckForUpdates(ctx, &http.Client{Timeout: 15 * time.Second})
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		if info.UpdateAvailable {
			fmt.Fprintf(w, "Update available: %s\n%s\n", info.LatestVersion, info.ReleaseURL)
		} else {
			fmt.Fprintln(w, "You are on the latest version.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&checkUpdate, "check", false, "check GitHub for a newer release")
}
