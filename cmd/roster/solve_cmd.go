package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/engine"
	"github.com/warp/roster-engine/factory"
)

func newSolveCmd() *cobra.Command {
	var (
		workspacePath string
		from          string
		to            string
		mode          string
		baselinePath  string
		outPath       string
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a workspace over a date range and emit the solution JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := factory.LoadWorkspace(workspacePath)
			if err != nil {
				return err
			}
			start, end, err := parseRangeFlags(from, to)
			if err != nil {
				return err
			}
			solveMode, err := parseModeFlag(mode)
			if err != nil {
				return err
			}

			var published *engine.SolutionBundle
			if baselinePath != "" {
				published, err = loadBundleFile(baselinePath)
				if err != nil {
					return err
				}
			}

			logger, err := newCmdLogger(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			sc, err := engine.BuildSolveContext(ws, start, end, solveMode, published)
			if err != nil {
				return err
			}
			solver := engine.NewGreedySolver(sc, logger)
			if err := solver.BuildModel(); err != nil {
				return err
			}
			if published != nil {
				if err := solver.EnableChangeMinimization(true, ws.Org.Weights.MovePublished); err != nil {
					return err
				}
			}

			bundle, err := solver.Solve(cmd.Context())
			if err != nil {
				return err
			}
			if err := writeBundleOut(outPath, bundle); err != nil {
				return err
			}

			// A roster with unfilled hard requirements is still written out
			// for inspection, but the command reports failure.
			if bundle.Metrics.HardViolations > 0 {
				return fmt.Errorf("solution has %d hard violation(s)", bundle.Metrics.HardViolations)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workspacePath, "workspace", "", "Workspace document (YAML or JSON, required)")
	cmd.Flags().StringVar(&from, "from", "", "Start of planning range (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&to, "to", "", "End of planning range (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&mode, "mode", string(engine.ModeStrict), "Solve mode: strict or relaxed")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Published solution JSON to minimize changes against")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file for the solution JSON (default stdout)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log solver progress")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
