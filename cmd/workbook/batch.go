package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	workbook "github.com/njchilds90/goworkbook"
	"github.com/njchilds90/goworkbook/internal/config"
)

var batchJobs int

// batchFile is the YAML layout read by the batch command.
type batchFile struct {
	Problems []batchEntry `yaml:"problems"`
}

// batchEntry is one problem; Level overrides the explanation level for it.
type batchEntry struct {
	workbook.Request `yaml:",inline"`
	Level            string `yaml:"level"`
}

// batchResult keeps the outcome of one entry in file order.
type batchResult struct {
	Index  int              `json:"index"`
	Bundle *workbook.Bundle `json:"bundle,omitempty"`
	Error  string           `json:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Solve a YAML file of problems concurrently",
	Long: `Reads a file of the form

  problems:
    - domain: quadratic
      input: x^2 - 5x + 6 = 0
    - domain: matrix
      type: determinant
      parameters: {A: [[1, 2], [3, 4]]}
      level: scaffolded

and solves the problems on --jobs workers. Results are printed in file order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := readBatch(args[0])
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		results, err := runBatch(ctx, wb, entries, batchJobs)
		if err != nil {
			return err
		}
		if jsonOutput {
			if err := printJSON(os.Stdout, results); err != nil {
				return err
			}
		} else {
			printBatch(os.Stdout, results)
		}

		failed := 0
		for _, r := range results {
			if r.Error != "" {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d problems could not be solved", failed, len(results))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", runtime.NumCPU(), "Number of problems solved in parallel")
}

func readBatch(path string) ([]batchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", path, err)
	}
	var f batchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	if len(f.Problems) == 0 {
		return nil, fmt.Errorf("batch %s: no problems listed", path)
	}
	return f.Problems, nil
}

// runBatch solves every entry with at most jobs in flight. A problem that
// cannot be classified is recorded in its result; only cancellation stops
// the batch.
func runBatch(ctx context.Context, w *workbook.Workbook, entries []batchEntry, jobs int) ([]batchResult, error) {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]batchResult, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = solveEntry(w, i, e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("batch finished", zap.Int("problems", len(entries)), zap.Int("jobs", jobs))
	return results, nil
}

func solveEntry(w *workbook.Workbook, i int, e batchEntry) batchResult {
	req := e.Request
	if e.Level != "" {
		cfg := w.Config()
		lvl, err := config.ParseLevel(e.Level)
		if err != nil {
			return batchResult{Index: i, Error: err.Error()}
		}
		cfg.ExplanationLevel = lvl
		req.Config = &cfg
	}
	b, err := w.Solve(req)
	if err != nil {
		return batchResult{Index: i, Error: err.Error()}
	}
	return batchResult{Index: i, Bundle: b}
}

func printBatch(out io.Writer, results []batchResult) {
	solved, verified := 0, 0
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(out, "\n%s %s\n", red(fmt.Sprintf("[%d] ✗", r.Index+1)), r.Error)
			continue
		}
		fmt.Fprintf(out, "\n%s", gray(fmt.Sprintf("[%d]", r.Index+1)))
		printBundle(out, r.Bundle)
		if !r.Bundle.Solution.Failed() {
			solved++
		}
		if r.Bundle.Verification.Valid {
			verified++
		}
	}
	fmt.Fprintf(out, "%s %d problems, %d solved, %d verified\n",
		cyan("Summary:"), len(results), solved, verified)
}
