package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import the inbox directory and pull the sensor feed once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := app.newSyncService(db).Sync(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d workouts from %d files, rejected %d packages\n",
				result.Recorded, result.Files, result.Rejected)
			return nil
		},
	}

	cmd.Flags().StringVar(&app.Config.InboxDir, "inbox", app.Config.InboxDir, "directory scanned for package files")
	cmd.Flags().StringVar(&app.Config.FeedURL, "feed", app.Config.FeedURL, "sensor gateway URL, empty to skip")
	return cmd
}
