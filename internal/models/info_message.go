package models

import "fmt"

// InfoMessage contains the metrics shown to the athlete after a training
type InfoMessage struct {
	TrainingType string  `json:"training_type"`
	Duration     float64 `json:"duration"` // in hours
	Distance     float64 `json:"distance"` // in km
	Speed        float64 `json:"speed"`    // in km/h
	Calories     float64 `json:"calories"` // in kcal
}

// Message renders the summary line, every number with three fractional digits.
func (m InfoMessage) Message() string {
	return fmt.Sprintf(
		"Training type: %s; Duration: %.3f h; Distance: %.3f km; Avg speed: %.3f km/h; Calories: %.3f.",
		m.TrainingType, m.Duration, m.Distance, m.Speed, m.Calories,
	)
}

// String implements fmt.Stringer.
func (m InfoMessage) String() string {
	return m.Message()
}
