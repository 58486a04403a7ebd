package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/mldmatrix/app"
	"github.com/ttpr0/mldmatrix/mld"
)

var (
	queryFixture      string
	querySources      string
	queryTargets      string
	queryWantDistance bool
	queryWantDuration bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Compute the duration/distance matrix for a fixture's sources and targets",
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryFixture, "fixture", "", "path to a fixture JSON file")
	queryCmd.Flags().StringVar(&querySources, "sources", "", "comma-separated phantom indices")
	queryCmd.Flags().StringVar(&queryTargets, "targets", "", "comma-separated phantom indices")
	queryCmd.Flags().BoolVar(&queryWantDistance, "want-distance", true, "include distances in the result (overrides the config default)")
	queryCmd.Flags().BoolVar(&queryWantDuration, "want-duration", true, "include durations in the result (overrides the config default)")
	queryCmd.MarkFlagRequired("fixture")
	queryCmd.MarkFlagRequired("sources")
	queryCmd.MarkFlagRequired("targets")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	wantDistance, wantDuration := queryWantDistance, queryWantDuration
	if !cmd.Flags().Changed("want-distance") {
		wantDistance = cfg.Solver.WantDistance
	}
	if !cmd.Flags().Changed("want-duration") {
		wantDuration = cfg.Solver.WantDuration
	}

	loaded, err := app.LoadFixture(queryFixture)
	if err != nil {
		return fmt.Errorf("loading fixture: %w", err)
	}
	sources, err := parseIndices(querySources)
	if err != nil {
		return fmt.Errorf("parsing --sources: %w", err)
	}
	targets, err := parseIndices(queryTargets)
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

	dispatch := "bidirectional forward"
	switch {
	case len(sources) == 1:
		dispatch = "one-to-many forward"
	case len(targets) == 1:
		dispatch = "one-to-many reverse"
	case len(targets) < len(sources):
		dispatch = "bidirectional reversed-then-transposed"
	}
	slog.Info("dispatching query", slog.Int("sources", len(sources)), slog.Int("targets", len(targets)), slog.String("driver", dispatch))

	ws := mld.NewWorkingStorage(loaded.Facade)
	result := mld.Search(ws, loaded.Facade, loaded.Partition, loaded.CellMetric, loaded.Phantoms, sources, targets, wantDistance, wantDuration)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
