// internal/database/models.go
package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sstent/fittracker/internal/models"
	"github.com/sstent/fittracker/internal/training"
)

var ErrNotFound = errors.New("workout not found")

type Workout struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	TrainingType string    `json:"training_type"`
	Action       int       `json:"action"`
	Duration     float64   `json:"duration"` // hours
	Weight       float64   `json:"weight"`   // kg
	Height       float64   `json:"height,omitempty"`
	PoolLength   float64   `json:"pool_length,omitempty"` // meters
	PoolCount    int       `json:"pool_count,omitempty"`
	Distance     float64   `json:"distance"` // km
	Speed        float64   `json:"speed"`    // km/h
	Calories     float64   `json:"calories"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewWorkout captures the readings and computed metrics of t.
func NewWorkout(t training.Training, source string) *Workout {
	info := training.ShowTrainingInfo(t)
	w := &Workout{
		ID:           uuid.NewString(),
		Kind:         string(t.Kind()),
		TrainingType: info.TrainingType,
		Duration:     info.Duration,
		Distance:     info.Distance,
		Speed:        info.Speed,
		Calories:     info.Calories,
		Source:       source,
		CreatedAt:    time.Now().UTC(),
	}

	switch tr := t.(type) {
	case training.Running:
		w.Action, w.Weight = tr.Action, tr.Weight
	case training.SportsWalking:
		w.Action, w.Weight, w.Height = tr.Action, tr.Weight, tr.Height
	case training.Swimming:
		w.Action, w.Weight = tr.Action, tr.Weight
		w.PoolLength, w.PoolCount = tr.LengthPool, tr.CountPool
	}
	return w
}

// Info returns the report line values stored for the workout.
func (w *Workout) Info() models.InfoMessage {
	return models.InfoMessage{
		TrainingType: w.TrainingType,
		Duration:     w.Duration,
		Distance:     w.Distance,
		Speed:        w.Speed,
		Calories:     w.Calories,
	}
}

type Stats struct {
	Total         int            `json:"total"`
	TotalDistance float64        `json:"total_distance"`
	TotalCalories float64        `json:"total_calories"`
	ByKind        map[string]int `json:"by_kind"`
}

// Database interface
type Database interface {
	GetWorkouts(ctx context.Context, limit, offset int) ([]Workout, error)
	GetWorkout(ctx context.Context, id string) (*Workout, error)
	CreateWorkout(ctx context.Context, workout *Workout) error
	FilterWorkouts(ctx context.Context, filters WorkoutFilters) ([]Workout, error)
	GetStats(ctx context.Context) (*Stats, error)
	GetWatermark(ctx context.Context, source string) (time.Time, error)
	SetWatermark(ctx context.Context, source string, pulledAt time.Time) error
	Close() error
}

type WorkoutFilters struct {
	Kind        string
	Source      string
	DateFrom    *time.Time
	DateTo      *time.Time
	MinDistance float64
	MaxDistance float64
	Limit       int
	Offset      int
	SortBy      string
	SortOrder   string
}
