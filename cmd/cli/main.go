package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"numcmp/adapters/postgres"
	"numcmp/adapters/rng"
	"numcmp/app"
	"numcmp/domain/sample"
	"numcmp/internal"
	"numcmp/internal/report"
	"numcmp/internal/simulation"
	"numcmp/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "numcmp",
		Short: "Compare two numeric samples using bootstrapping and simulation",
	}

	rootCmd.AddCommand(
		newCompareCmd(),
		newSummarizeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCompareCmd() *cobra.Command {
	var iterations int
	var seed int64
	var workers int
	var column string
	var format string
	var save bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "compare [baseline] [target]",
		Short: "Bootstrap-compare a target sample against a baseline",
		Long: `Compare a target numeric sample against a baseline by resampling the
baseline and counting how often the target's statistic exceeds or falls
short of a baseline-only replicate's.

Sources are line-oriented numeric text files; .csv and .xlsx files are read
as tables (pick the column with --column).

Example: numcmp compare before.txt after.txt --iterations 10000 --seed 42`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample.SetStrictChecks(strict)

			engine := simulation.NewEngine(rng.New())
			engine.SetWorkers(workers)

			ledger, closer, err := openLedger(cmd.Context(), save)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer()
			}

			service := app.NewCompareService(engine, ledger, internal.DefaultLogger)
			outcome, err := service.Compare(cmd.Context(), app.CompareRequest{
				BaselineRef: args[0],
				TargetRef:   args[1],
				Column:      column,
				Iterations:  iterations,
				Seed:        seed,
				Save:        save,
			})
			if err != nil {
				return err
			}

			cmp := report.Comparison{
				BaselineRef:     args[0],
				TargetRef:       args[1],
				BaselineSummary: outcome.BaselineSummary,
				TargetSummary:   outcome.TargetSummary,
				Results:         outcome.Results,
			}

			switch format {
			case "markdown":
				fmt.Print(report.RenderMarkdown(cmp))
			default:
				fmt.Print(report.RenderText(cmp))
			}

			if save {
				fmt.Printf("\nsaved run %s\n", outcome.RunID)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "i", 10000, "Number of simulation iterations")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic resampling")
	cmd.Flags().IntVar(&workers, "workers", 4, "Simulation worker count (1 = serial)")
	cmd.Flags().StringVar(&column, "column", "", "Column name for csv/xlsx sources (default: first column)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or markdown")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run to the ledger (requires DATABASE_URL)")
	cmd.Flags().BoolVar(&strict, "strict-checks", false, "Verify sample ordering preconditions")

	return cmd
}

func newSummarizeCmd() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Print estimator values and a distribution profile for one sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := simulation.NewEngine(rng.New())
			service := app.NewCompareService(engine, nil, internal.DefaultLogger)

			summary, profile, err := service.Summarize(cmd.Context(), args[0], column)
			if err != nil {
				return err
			}

			fmt.Printf("Count:\t%d\n", summary.Count)
			for _, nv := range summary.Values {
				fmt.Printf("%s:\t%v\n", nv.Name, nv.Value)
			}
			fmt.Printf("\nstddev:\t%v\nskew:\t%v\nkurtosis:\t%v\nnormal-ish:\t%v (p=%.3f)\n",
				profile.StdDev, profile.Skewness, profile.Kurtosis, profile.IsNormal, profile.ShapiroP)
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column name for csv/xlsx sources (default: first column)")

	return cmd
}

// openLedger connects the postgres ledger when persistence was requested.
func openLedger(ctx context.Context, save bool) (ports.RunLedgerPort, func() error, error) {
	if !save {
		return nil, nil, nil
	}

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, nil, fmt.Errorf("--save requires DATABASE_URL")
	}

	db, err := postgres.Connect(url)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewRunRepository(db), db.Close, nil
}
