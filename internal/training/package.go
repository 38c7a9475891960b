package training

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownWorkoutType    = errors.New("unknown workout type")
	ErrInvalidParameterCount = errors.New("invalid parameter count")
	ErrInvalidParameter      = errors.New("invalid parameter")
)

// Kind is the workout type code carried by a sensor package.
type Kind string

const (
	KindSwimming Kind = "SWM"
	KindRunning  Kind = "RUN"
	KindWalking  Kind = "WLK"
)

// Kinds lists every supported workout kind.
var Kinds = []Kind{KindSwimming, KindRunning, KindWalking}

// ParseKind validates a workout type code.
func ParseKind(code string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == code {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWorkoutType, code)
}

// Name is the display name used in report lines.
func (k Kind) Name() string {
	switch k {
	case KindRunning:
		return "Running"
	case KindWalking:
		return "SportsWalking"
	case KindSwimming:
		return "Swimming"
	default:
		return string(k)
	}
}

// Arity is the number of values a package of this kind carries.
func (k Kind) Arity() int {
	switch k {
	case KindRunning:
		return 3
	case KindWalking:
		return 4
	case KindSwimming:
		return 5
	default:
		return 0
	}
}

// Package is a raw sensor package: a type code and its readings in the order
//
//	RUN: action, duration, weight
//	WLK: action, duration, weight, height
//	SWM: action, duration, weight, pool length, pool count
type Package struct {
	Type string    `json:"type"`
	Data []float64 `json:"data"`
}

// Read dispatches the package to its workout kind.
func (p Package) Read() (Training, error) {
	return ReadPackage(p.Type, p.Data)
}

// ReadPackage builds the training matching code from data.
func ReadPackage(code string, data []float64) (Training, error) {
	kind, err := ParseKind(code)
	if err != nil {
		return nil, err
	}
	if len(data) != kind.Arity() {
		return nil, fmt.Errorf("%w: %s expects %d values, got %d",
			ErrInvalidParameterCount, kind, kind.Arity(), len(data))
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: value %d is not finite", ErrInvalidParameter, i)
		}
	}

	action, err := count(data[0], "action")
	if err != nil {
		return nil, err
	}
	base := Base{Action: action, Duration: data[1], Weight: data[2]}

	switch kind {
	case KindRunning:
		return Running{Base: base}, nil
	case KindWalking:
		return SportsWalking{Base: base, Height: data[3]}, nil
	case KindSwimming:
		laps, err := count(data[4], "pool count")
		if err != nil {
			return nil, err
		}
		if laps < 0 {
			return nil, fmt.Errorf("%w: pool count must not be negative, got %d", ErrInvalidParameter, laps)
		}
		return Swimming{Base: base, LengthPool: data[3], CountPool: laps}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWorkoutType, code)
}

// count converts a whole-number reading. Values beyond the int32 range are
// rejected so the conversion never wraps.
func count(v float64, name string) (int, error) {
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidParameter, name, v)
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: %s out of range, got %v", ErrInvalidParameter, name, v)
	}
	return int(v), nil
}
