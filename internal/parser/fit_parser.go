package parser

import (
	"bytes"
	"fmt"

	"github.com/tormoder/fit"

	"github.com/sstent/fittracker/internal/training"
)

const (
	invalidUint32 = 0xFFFFFFFF
	invalidUint16 = 0xFFFF
)

// FITParser turns the sessions of a FIT activity file into sensor packages.
// Running and walking cycles are strides, so steps are twice the cycle count;
// swimming cycles are strokes.
type FITParser struct {
	profile Profile
}

func NewFITParser(profile Profile) *FITParser {
	return &FITParser{profile: profile}
}

func (p *FITParser) Parse(data []byte) ([]training.Package, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity from FIT: %w", err)
	}

	var packages []training.Package
	for _, session := range activity.Sessions {
		if pkg, ok := p.sessionPackage(session); ok {
			packages = append(packages, pkg)
		}
	}
	if len(packages) == 0 {
		return nil, ErrNoSessions
	}
	return packages, nil
}

func (p *FITParser) sessionPackage(session *fit.SessionMsg) (training.Package, bool) {
	if session == nil {
		return training.Package{}, false
	}

	var hours float64
	if session.TotalTimerTime != invalidUint32 {
		// scale 1000, seconds
		hours = float64(session.TotalTimerTime) / 1000 / 3600
	}
	var cycles float64
	if session.TotalCycles != invalidUint32 {
		cycles = float64(session.TotalCycles)
	}

	switch session.Sport {
	case fit.SportRunning:
		return training.Package{
			Type: string(training.KindRunning),
			Data: []float64{cycles * 2, hours, p.profile.WeightKg},
		}, true
	case fit.SportWalking:
		return training.Package{
			Type: string(training.KindWalking),
			Data: []float64{cycles * 2, hours, p.profile.WeightKg, p.profile.HeightCm},
		}, true
	case fit.SportSwimming:
		var poolLength, lengths float64
		if session.PoolLength != invalidUint16 {
			// scale 100, meters
			poolLength = float64(session.PoolLength) / 100
		}
		if session.NumActiveLengths != invalidUint16 {
			lengths = float64(session.NumActiveLengths)
		}
		return training.Package{
			Type: string(training.KindSwimming),
			Data: []float64{cycles, hours, p.profile.WeightKg, poolLength, lengths},
		}, true
	default:
		return training.Package{}, false
	}
}
