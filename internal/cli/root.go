package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/sstent/fittracker/internal/config"
	"github.com/sstent/fittracker/internal/database"
	"github.com/sstent/fittracker/internal/feed"
	"github.com/sstent/fittracker/internal/parser"
	"github.com/sstent/fittracker/internal/report"
	"github.com/sstent/fittracker/internal/sync"
	"github.com/sstent/fittracker/internal/training"
)

// demoPackages is the sample processed when no subcommand is given.
var demoPackages = []training.Package{
	{Type: "SWM", Data: []float64{720, 1, 80, 25, 40}},
	{Type: "RUN", Data: []float64{15000, 1, 75}},
	{Type: "WLK", Data: []float64{9000, 1, 75, 180}},
}

// App holds the configuration and logger shared by all commands.
type App struct {
	Config config.Config
	Logger *slog.Logger
}

// NewRootCmd creates the top-level "fittracker" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "fittracker",
		Short:         "Distance, speed and calorie calculator for sensor packages",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.NewPrinter(cmd.OutOrStdout()).PrintPackages(demoPackages)
		},
	}

	root.PersistentFlags().StringVar(&app.Config.DBPath, "db", app.Config.DBPath, "path of the workout history database")

	root.AddCommand(
		newReportCmd(app),
		newHistoryCmd(app),
		newStatsCmd(app),
		newSyncCmd(app),
		newServeCmd(app),
	)

	return root
}

func (app *App) profile() parser.Profile {
	return parser.Profile{
		WeightKg: app.Config.AthleteWeightKg,
		HeightCm: app.Config.AthleteHeightCm,
	}
}

func (app *App) openDB() (*database.SQLiteDB, error) {
	return database.Open(app.Config.DBPath)
}

func (app *App) newSyncService(db sync.Store) *sync.SyncService {
	var source sync.Feed
	if app.Config.FeedURL != "" {
		timeout := app.Config.FeedTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		source = feed.NewClient(app.Config.FeedURL, timeout)
	}
	return sync.NewSyncService(db, source, app.Config.InboxDir, app.profile(), app.Logger)
}
