// Package report writes training summaries.
package report

import (
	"fmt"
	"io"

	"github.com/sstent/fittracker/internal/models"
	"github.com/sstent/fittracker/internal/training"
)

// Printer writes one summary line per training.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print computes the metrics of t and writes its summary line.
func (p *Printer) Print(t training.Training) error {
	return p.PrintInfo(training.ShowTrainingInfo(t))
}

func (p *Printer) PrintInfo(info models.InfoMessage) error {
	if _, err := fmt.Fprintln(p.w, info.Message()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// PrintPackages dispatches and prints every package, stopping at the first
// package that cannot be read.
func (p *Printer) PrintPackages(packages []training.Package) error {
	for i, pkg := range packages {
		t, err := pkg.Read()
		if err != nil {
			return fmt.Errorf("package %d: %w", i+1, err)
		}
		if err := p.Print(t); err != nil {
			return err
		}
	}
	return nil
}
