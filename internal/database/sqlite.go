// internal/database/sqlite.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// fixed width so that text order matches time order
const timeLayout = "2006-01-02 15:04:05.000000"

var sortColumns = map[string]bool{
	"created_at": true,
	"duration":   true,
	"distance":   true,
	"speed":      true,
	"calories":   true,
}

type SQLiteDB struct {
	db *sql.DB
}

// Open opens (creating if needed) the workout history at dbPath.
// ":memory:" gives a private in-memory database.
func Open(dbPath string) (*SQLiteDB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// ":memory:" databases live per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	sqlite := &SQLiteDB{db: db}
	if err := sqlite.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return sqlite, nil
}

func (s *SQLiteDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		training_type TEXT NOT NULL,
		action INTEGER NOT NULL,
		duration REAL NOT NULL,
		weight REAL NOT NULL,
		height REAL NOT NULL DEFAULT 0,
		pool_length REAL NOT NULL DEFAULT 0,
		pool_count INTEGER NOT NULL DEFAULT 0,
		distance REAL NOT NULL,
		speed REAL NOT NULL,
		calories REAL NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_kind ON workouts(kind);
	CREATE INDEX IF NOT EXISTS idx_workouts_created_at ON workouts(created_at);
	CREATE INDEX IF NOT EXISTS idx_workouts_source ON workouts(source);

	CREATE TABLE IF NOT EXISTS sync_watermarks (
		source TEXT PRIMARY KEY,
		pulled_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

const selectWorkouts = `
	SELECT id, kind, training_type, action, duration, weight, height,
	       pool_length, pool_count, distance, speed, calories, source, created_at
	FROM workouts`

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row scanner) (*Workout, error) {
	var w Workout
	var createdAt string

	err := row.Scan(
		&w.ID, &w.Kind, &w.TrainingType, &w.Action, &w.Duration, &w.Weight, &w.Height,
		&w.PoolLength, &w.PoolCount, &w.Distance, &w.Speed, &w.Calories, &w.Source, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if w.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at of %s: %w", w.ID, err)
	}
	return &w, nil
}

func (s *SQLiteDB) GetWorkouts(ctx context.Context, limit, offset int) ([]Workout, error) {
	return s.FilterWorkouts(ctx, WorkoutFilters{Limit: limit, Offset: offset})
}

func (s *SQLiteDB) GetWorkout(ctx context.Context, id string) (*Workout, error) {
	row := s.db.QueryRowContext(ctx, selectWorkouts+` WHERE id = ?`, id)

	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return w, nil
}

func (s *SQLiteDB) CreateWorkout(ctx context.Context, w *Workout) error {
	query := `
	INSERT INTO workouts (
		id, kind, training_type, action, duration, weight, height,
		pool_length, pool_count, distance, speed, calories, source, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		w.ID, w.Kind, w.TrainingType, w.Action, w.Duration, w.Weight, w.Height,
		w.PoolLength, w.PoolCount, w.Distance, w.Speed, w.Calories, w.Source,
		w.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert workout %s: %w", w.ID, err)
	}
	return nil
}

func (s *SQLiteDB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByKind: make(map[string]int)}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(distance), 0), COALESCE(SUM(calories), 0) FROM workouts",
	).Scan(&stats.Total, &stats.TotalDistance, &stats.TotalCalories)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT kind, COUNT(*) FROM workouts GROUP BY kind")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		stats.ByKind[kind] = count
	}
	return stats, rows.Err()
}

func (s *SQLiteDB) FilterWorkouts(ctx context.Context, filters WorkoutFilters) ([]Workout, error) {
	query := selectWorkouts + ` WHERE 1=1`

	var args []any
	var conditions []string

	// Build WHERE conditions
	if filters.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, filters.Kind)
	}

	if filters.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filters.Source)
	}

	if filters.DateFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filters.DateFrom.UTC().Format(timeLayout))
	}

	if filters.DateTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, filters.DateTo.UTC().Format(timeLayout))
	}

	if filters.MinDistance > 0 {
		conditions = append(conditions, "distance >= ?")
		args = append(args, filters.MinDistance)
	}

	if filters.MaxDistance > 0 {
		conditions = append(conditions, "distance <= ?")
		args = append(args, filters.MaxDistance)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	orderBy := "created_at"
	if sortColumns[filters.SortBy] {
		orderBy = filters.SortBy
	}

	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	query += fmt.Sprintf(" ORDER BY %s %s, id", orderBy, order)

	// Add pagination
	if filters.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

// GetWatermark returns when source was last pulled successfully, or the zero
// time if it never was.
func (s *SQLiteDB) GetWatermark(ctx context.Context, source string) (time.Time, error) {
	var pulledAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT pulled_at FROM sync_watermarks WHERE source = ?", source,
	).Scan(&pulledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read watermark of %s: %w", source, err)
	}

	t, err := time.Parse(timeLayout, pulledAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing watermark of %s: %w", source, err)
	}
	return t, nil
}

func (s *SQLiteDB) SetWatermark(ctx context.Context, source string, pulledAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO sync_watermarks (source, pulled_at) VALUES (?, ?)
	ON CONFLICT(source) DO UPDATE SET pulled_at = excluded.pulled_at`,
		source, pulledAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to store watermark of %s: %w", source, err)
	}
	return nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
