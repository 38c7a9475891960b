package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sstent/fittracker/internal/database"
	"github.com/sstent/fittracker/internal/training"
)

func newHistoryCmd(app *App) *cobra.Command {
	var filters database.WorkoutFilters

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filters.Kind != "" {
				if _, err := training.ParseKind(filters.Kind); err != nil {
					return err
				}
			}

			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			workouts, err := db.FilterWorkouts(cmd.Context(), filters)
			if err != nil {
				return fmt.Errorf("listing workouts: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, w := range workouts {
				fmt.Fprintf(out, "%s  %s\n", w.CreatedAt.Local().Format("2006-01-02 15:04"), w.Info().Message())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filters.Kind, "type", "t", "", "workout type code (RUN, WLK, SWM)")
	cmd.Flags().StringVar(&filters.Source, "source", "", "only workouts from this source (cli, api, inbox, feed)")
	cmd.Flags().IntVarP(&filters.Limit, "limit", "n", 20, "maximum number of workouts, 0 for all")
	cmd.Flags().StringVar(&filters.SortBy, "sort", "created_at", "sort column (created_at, duration, distance, speed, calories)")
	cmd.Flags().StringVar(&filters.SortOrder, "order", "desc", "sort order (asc, desc)")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals over the stored workouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := db.GetStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("reading stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workouts: %d\n", stats.Total)
			fmt.Fprintf(out, "Distance: %.3f km\n", stats.TotalDistance)
			fmt.Fprintf(out, "Calories: %.3f\n", stats.TotalCalories)

			kinds := make([]string, 0, len(stats.ByKind))
			for kind := range stats.ByKind {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
			for _, kind := range kinds {
				fmt.Fprintf(out, "  %s: %d\n", training.Kind(kind).Name(), stats.ByKind[kind])
			}
			return nil
		},
	}
}
