// Package training converts raw sensor readings into distance, speed and
// calorie estimates for the supported workout kinds.
package training

import (
	"math"

	"github.com/sstent/fittracker/internal/models"
)

const (
	LenStep   = 0.65 // meters per step
	LenStroke = 1.38 // meters per swimming stroke
	MInKm     = 1000
	MinInH    = 60
	KmhInMs   = 3.6

	runningCaloriesMeanSpeedMultiplier = 18
	runningCaloriesMeanSpeedShift      = 1.79

	walkingCaloriesWeightMultiplier = 0.035
	walkingSpeedHeightMultiplier    = 0.029

	swimmingCaloriesMeanSpeedShift   = 1.1
	swimmingCaloriesWeightMultiplier = 2
)

// Training is a single computed workout.
type Training interface {
	Kind() Kind
	Hours() float64
	Distance() float64      // km
	MeanSpeed() float64     // km/h
	SpentCalories() float64 // kcal
}

// Base holds the readings shared by every workout kind.
type Base struct {
	Action   int     // steps or strokes
	Duration float64 // hours
	Weight   float64 // kg
}

func (b Base) Hours() float64 {
	return b.Duration
}

// distance returns 0 for a negative action count.
func (b Base) distance(unitLength float64) float64 {
	if b.Action < 0 {
		return 0
	}
	return float64(b.Action) * unitLength / MInKm
}

func (b Base) speed(distance float64) float64 {
	if b.Duration <= 0 {
		return 0
	}
	return distance / b.Duration
}

func (b Base) minutes() float64 {
	return b.Duration * MinInH
}

// Running is a run measured in steps.
type Running struct {
	Base
}

func (Running) Kind() Kind { return KindRunning }

func (r Running) Distance() float64 {
	return r.distance(LenStep)
}

func (r Running) MeanSpeed() float64 {
	return r.speed(r.Distance())
}

func (r Running) SpentCalories() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return (runningCaloriesMeanSpeedMultiplier*r.MeanSpeed() + runningCaloriesMeanSpeedShift) *
		r.Weight / MInKm * r.minutes()
}

// SportsWalking is a walk measured in steps. Height is taken as supplied by
// the sensor package.
type SportsWalking struct {
	Base
	Height float64
}

func (SportsWalking) Kind() Kind { return KindWalking }

func (w SportsWalking) Distance() float64 {
	return w.distance(LenStep)
}

func (w SportsWalking) MeanSpeed() float64 {
	return w.speed(w.Distance())
}

func (w SportsWalking) SpentCalories() float64 {
	if w.Duration <= 0 || w.Height <= 0 {
		return 0
	}
	speedMs := w.MeanSpeed() / KmhInMs
	return (walkingCaloriesWeightMultiplier*w.Weight +
		math.Pow(speedMs, 2)/w.Height*walkingSpeedHeightMultiplier*w.Weight) * w.minutes()
}

// Swimming is a pool swim measured in strokes.
type Swimming struct {
	Base
	LengthPool float64 // meters
	CountPool  int     // lengths swum
}

func (Swimming) Kind() Kind { return KindSwimming }

func (s Swimming) Distance() float64 {
	return s.distance(LenStroke)
}

// MeanSpeed is derived from the pool geometry, not from the stroke count.
func (s Swimming) MeanSpeed() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return s.LengthPool * float64(s.CountPool) / MInKm / s.Duration
}

func (s Swimming) SpentCalories() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return (s.MeanSpeed() + swimmingCaloriesMeanSpeedShift) *
		swimmingCaloriesWeightMultiplier * s.Weight * s.Duration
}

// ShowTrainingInfo collects the computed metrics of t.
func ShowTrainingInfo(t Training) models.InfoMessage {
	return models.InfoMessage{
		TrainingType: t.Kind().Name(),
		Duration:     t.Hours(),
		Distance:     t.Distance(),
		Speed:        t.MeanSpeed(),
		Calories:     t.SpentCalories(),
	}
}
