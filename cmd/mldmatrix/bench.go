package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"github.com/ttpr0/mldmatrix/app"
	"github.com/ttpr0/mldmatrix/mld"
)

var (
	benchFixture string
	benchSources string
	benchTargets string
	benchWorkers int
	benchRuns    int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a fixture's query repeatedly across N independent worker goroutines",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchFixture, "fixture", "", "path to a fixture JSON file")
	benchCmd.Flags().StringVar(&benchSources, "sources", "", "comma-separated phantom indices")
	benchCmd.Flags().StringVar(&benchTargets, "targets", "", "comma-separated phantom indices")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "worker pool size (0 = config default)")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 100, "total searches to spread across the pool (each worker runs runs/workers, rounded down, at least 1)")
	benchCmd.MarkFlagRequired("fixture")
	benchCmd.MarkFlagRequired("sources")
	benchCmd.MarkFlagRequired("targets")
}

// runBench demonstrates the engine's concurrency model: the facade,
// partition and cell metric are shared read-only across every worker,
// and each worker owns its own WorkingStorage for the whole run, never
// handing it to another goroutine.
func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	loaded, err := app.LoadFixture(benchFixture)
	if err != nil {
		return fmt.Errorf("loading fixture: %w", err)
	}
	sources, err := parseIndices(benchSources)
	if err != nil {
		return fmt.Errorf("parsing --sources: %w", err)
	}
	targets, err := parseIndices(benchTargets)
	if err != nil {
		return fmt.Errorf("parsing --targets: %w", err)
	}
	sources, err = validateIndices(cfg.Solver.Validation, len(loaded.Phantoms), sources, "sources")
	if err != nil {
		return err
	}
	targets, err = validateIndices(cfg.Solver.Validation, len(loaded.Phantoms), targets, "targets")
	if err != nil {
		return err
	}

	workers := benchWorkers
	if workers <= 0 {
		workers = cfg.Workers.PoolSize
	}

	g, ctx := errgroup.WithContext(context.Background())
	runsPerWorker := benchRuns / workers
	if runsPerWorker == 0 {
		runsPerWorker = 1
	}

	start := time.Now()
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			ws := mld.NewWorkingStorage(loaded.Facade)
			for i := 0; i < runsPerWorker; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				mld.Search(ws, loaded.Facade, loaded.Partition, loaded.CellMetric, loaded.Phantoms, sources, targets, cfg.Solver.WantDistance, cfg.Solver.WantDuration)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	total := workers * runsPerWorker
	slog.Info("bench complete",
		slog.Int("workers", workers),
		slog.Int("total_searches", total),
		slog.Duration("elapsed", elapsed),
		slog.Duration("per_search", elapsed/time.Duration(total)),
	)
	return nil
}
