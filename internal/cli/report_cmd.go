package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sstent/fittracker/internal/parser"
	"github.com/sstent/fittracker/internal/report"
	"github.com/sstent/fittracker/internal/sync"
	"github.com/sstent/fittracker/internal/training"
)

func newReportCmd(app *App) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "report [file...]",
		Short: "Print a summary line for every package in the given files (- for stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}

			var packages []training.Package
			for _, name := range args {
				pkgs, err := readPackages(cmd.InOrStdin(), name, app.profile())
				if err != nil {
					return err
				}
				packages = append(packages, pkgs...)
			}

			printer := report.NewPrinter(cmd.OutOrStdout())
			if !save {
				return printer.PrintPackages(packages)
			}

			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			svc := app.newSyncService(db)
			for i, pkg := range packages {
				workout, err := svc.Record(cmd.Context(), pkg, sync.SourceCLI)
				if err != nil {
					return fmt.Errorf("package %d: %w", i+1, err)
				}
				if err := printer.PrintInfo(workout.Info()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "store the computed workouts in the history")
	return cmd
}

func readPackages(stdin io.Reader, name string, profile parser.Profile) ([]training.Package, error) {
	var (
		data []byte
		p    parser.Parser
		err  error
	)

	if name == "-" {
		if data, err = io.ReadAll(stdin); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		p, err = parser.NewParserFromData(data, profile)
	} else {
		if data, err = os.ReadFile(name); err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		p, err = parser.NewParser(name, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	packages, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return packages, nil
}
