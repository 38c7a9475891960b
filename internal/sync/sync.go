package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/sstent/fittracker/internal/database"
	"github.com/sstent/fittracker/internal/observability"
	"github.com/sstent/fittracker/internal/parser"
	"github.com/sstent/fittracker/internal/training"
)

// Sources recorded with each workout.
const (
	SourceCLI   = "cli"
	SourceAPI   = "api"
	SourceInbox = "inbox"
	SourceFeed  = "feed"
)

const (
	processedDir = "processed"
	failedDir    = "failed"
)

// Store persists computed workouts and the feed watermark.
type Store interface {
	CreateWorkout(ctx context.Context, workout *database.Workout) error
	GetWatermark(ctx context.Context, source string) (time.Time, error)
	SetWatermark(ctx context.Context, source string, pulledAt time.Time) error
}

// Feed supplies packages recorded after a point in time.
type Feed interface {
	FetchPackages(ctx context.Context, since time.Time) ([]training.Package, error)
}

// Result summarizes one sync run.
type Result struct {
	Recorded int `json:"recorded"`
	Rejected int `json:"rejected"`
	Files    int `json:"files"`
}

type SyncService struct {
	store    Store
	feed     Feed
	inboxDir string
	profile  parser.Profile
	logger   *slog.Logger

	mu         gosync.Mutex
	lastPull   time.Time
	lastPullOK bool // lastPull loaded from the store
}

// NewSyncService wires a recorder. feed may be nil and inboxDir empty to
// disable the corresponding source.
func NewSyncService(store Store, feed Feed, inboxDir string, profile parser.Profile, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{
		store:    store,
		feed:     feed,
		inboxDir: inboxDir,
		profile:  profile,
		logger:   logger,
	}
}

// Record dispatches pkg, computes its metrics and stores the result.
func (s *SyncService) Record(ctx context.Context, pkg training.Package, source string) (*database.Workout, error) {
	t, err := pkg.Read()
	if err != nil {
		observability.RecordRejected(rejectReason(err))
		return nil, err
	}

	workout := database.NewWorkout(t, source)
	if err := s.store.CreateWorkout(ctx, workout); err != nil {
		return nil, err
	}
	observability.RecordTraining(workout.Kind, source, workout.CreatedAt)
	return workout, nil
}

// Sync imports the inbox directory and pulls the feed. Failures of single
// packages or files are logged and skipped.
func (s *SyncService) Sync(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startTime := time.Now()
	s.logger.Info("starting sync")

	var result Result
	if err := s.importInbox(ctx, &result); err != nil {
		return result, err
	}
	if err := s.pullFeed(ctx, &result); err != nil {
		return result, err
	}

	s.logger.Info("sync completed",
		"recorded", result.Recorded,
		"rejected", result.Rejected,
		"files", result.Files,
		"elapsed", time.Since(startTime),
	)
	return result, nil
}

func (s *SyncService) importInbox(ctx context.Context, result *Result) error {
	if s.inboxDir == "" {
		return nil
	}

	entries, err := os.ReadDir(s.inboxDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read inbox: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(s.inboxDir, entry.Name())
		result.Files++

		dest := processedDir
		if err := s.importFile(ctx, path, result); err != nil {
			s.logger.Error("error importing file", "file", entry.Name(), "error", err)
			dest = failedDir
		}
		if err := moveTo(path, filepath.Join(s.inboxDir, dest)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SyncService) importFile(ctx context.Context, path string, result *Result) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	p, err := parser.NewParser(path, s.profile)
	if err != nil {
		return err
	}
	packages, err := p.Parse(data)
	if err != nil {
		return err
	}

	s.recordAll(ctx, packages, SourceInbox, result, "file", filepath.Base(path))
	return nil
}

func (s *SyncService) pullFeed(ctx context.Context, result *Result) error {
	if s.feed == nil {
		return nil
	}

	if !s.lastPullOK {
		since, err := s.store.GetWatermark(ctx, SourceFeed)
		if err != nil {
			return err
		}
		s.lastPull, s.lastPullOK = since, true
	}

	pulledAt := time.Now()
	packages, err := s.feed.FetchPackages(ctx, s.lastPull)
	if err != nil {
		return fmt.Errorf("failed to pull feed: %w", err)
	}
	s.logger.Info("fetched packages from feed", "count", len(packages), "since", s.lastPull)

	s.recordAll(ctx, packages, SourceFeed, result)
	if err := s.store.SetWatermark(ctx, SourceFeed, pulledAt); err != nil {
		return err
	}
	s.lastPull = pulledAt
	return nil
}

func (s *SyncService) recordAll(ctx context.Context, packages []training.Package, source string, result *Result, attrs ...any) {
	for i, pkg := range packages {
		workout, err := s.Record(ctx, pkg, source)
		if err != nil {
			s.logger.Warn("skipping package",
				append(attrs, "source", source, "index", i, "type", pkg.Type, "error", err)...)
			result.Rejected++
			continue
		}
		s.logger.Debug("recorded workout", "id", workout.ID, "kind", workout.Kind, "source", source)
		result.Recorded++
	}
}

func moveTo(path, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.Rename(path, filepath.Join(dir, filepath.Base(path))); err != nil {
		return fmt.Errorf("failed to move %s: %w", filepath.Base(path), err)
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, training.ErrUnknownWorkoutType):
		return "unknown_type"
	case errors.Is(err, training.ErrInvalidParameterCount):
		return "parameter_count"
	case errors.Is(err, training.ErrInvalidParameter):
		return "invalid_parameter"
	default:
		return "other"
	}
}
