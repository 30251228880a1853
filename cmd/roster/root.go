package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/roster-engine/engine"
	"github.com/warp/roster-engine/export"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "roster",
		Short:         "Roster planning and publishing tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newSolveCmd())
	cmd.AddCommand(newDiffCmd())
	cmd.AddCommand(newSimulateCmd())
	cmd.AddCommand(newPublishCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newExportCmd())
	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// =============================================================================
// Shared helpers
// =============================================================================

func newCmdLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	return cfg.Build()
}

func parseRangeFlags(from, to string) (engine.TimePoint, engine.TimePoint, error) {
	start, err := parseDayFlag(from)
	if err != nil {
		return engine.TimePoint{}, engine.TimePoint{}, fmt.Errorf("invalid --from: %w", err)
	}
	end, err := parseDayFlag(to)
	if err != nil {
		return engine.TimePoint{}, engine.TimePoint{}, fmt.Errorf("invalid --to: %w", err)
	}
	return start, end, nil
}

func parseDayFlag(s string) (engine.TimePoint, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return engine.TimePoint{}, err
	}
	return engine.NewTimePoint(t.Year(), t.Month(), t.Day()), nil
}

func parseModeFlag(s string) (engine.SolveMode, error) {
	switch engine.SolveMode(s) {
	case engine.ModeStrict:
		return engine.ModeStrict, nil
	case engine.ModeRelaxed:
		return engine.ModeRelaxed, nil
	default:
		return "", fmt.Errorf("invalid --mode %q (want strict or relaxed)", s)
	}
}

func loadBundleFile(path string) (*engine.SolutionBundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open solution %s: %w", path, err)
	}
	defer f.Close()
	return export.ReadJSON(f)
}

// writeBundleOut writes the canonical solution JSON to the given path, or to
// stdout when path is empty.
func writeBundleOut(path string, bundle *engine.SolutionBundle) error {
	if path == "" {
		return export.WriteJSON(os.Stdout, bundle)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return export.WriteJSON(f, bundle)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
