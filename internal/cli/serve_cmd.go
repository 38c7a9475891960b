package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/sstent/fittracker/internal/web"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and sync on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.serve(ctx)
		},
	}

	cmd.Flags().StringVar(&app.Config.HTTPAddress, "addr", app.Config.HTTPAddress, "HTTP listen address")
	cmd.Flags().StringVar(&app.Config.SyncSchedule, "schedule", app.Config.SyncSchedule, "cron schedule of the background sync")
	return cmd
}

// serve runs until ctx is done or the server fails.
func (app *App) serve(ctx context.Context) error {
	db, err := app.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	syncService := app.newSyncService(db)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(app.Config.SyncSchedule, func() {
		app.Logger.Info("starting scheduled sync")
		if _, err := syncService.Sync(ctx); err != nil {
			app.Logger.Error("scheduled sync failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", app.Config.SyncSchedule, err)
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              app.Config.HTTPAddress,
		Handler:           web.NewRouter(web.NewWebHandler(db, syncService, app.Logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler.Start()

	serverErr := make(chan error, 1)
	go func() {
		app.Logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err, ok := <-serverErr:
		<-scheduler.Stop().Done()
		if !ok {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}

	app.Logger.Info("shutting down")

	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("server shutdown error", "error", err)
	}

	app.Logger.Info("shutdown complete")
	return nil
}
