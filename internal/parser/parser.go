package parser

import (
	"errors"

	"github.com/sstent/fittracker/internal/training"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrNoSessions        = errors.New("no usable sessions found")
)

// Parser decodes a file of sensor packages.
type Parser interface {
	Parse(data []byte) ([]training.Package, error)
}

// Profile supplies the athlete readings that device files do not carry.
type Profile struct {
	WeightKg float64
	HeightCm float64
}
