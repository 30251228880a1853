package main

import (
	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/engine"
	"github.com/warp/roster-engine/factory"
)

type simulateOutput struct {
	BaselineHealth float64    `json:"baseline_health"`
	PatchedHealth  float64    `json:"patched_health"`
	HealthDelta    float64    `json:"health_delta"`
	Diff           diffOutput `json:"diff"`
}

func newSimulateCmd() *cobra.Command {
	var (
		workspacePath string
		patchPath     string
		from          string
		to            string
		mode          string
		baselinePath  string
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Solve with and without a patch and report the difference",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := factory.LoadWorkspace(workspacePath)
			if err != nil {
				return err
			}
			patch, err := factory.LoadPatch(patchPath)
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

			result, err := engine.Simulate(cmd.Context(), ws, patch, start, end, solveMode, published, logger)
			if err != nil {
				return err
			}

			return printJSON(simulateOutput{
				BaselineHealth: result.Baseline.Metrics.HealthScore,
				PatchedHealth:  result.Patched.Metrics.HealthScore,
				HealthDelta:    result.HealthDelta,
				Diff:           toDiffOutput(result.Diff),
			})
		},
	}

	cmd.Flags().StringVar(&workspacePath, "workspace", "", "Workspace document (YAML or JSON, required)")
	cmd.Flags().StringVar(&patchPath, "patch", "", "Patch document (YAML or JSON, required)")
	cmd.Flags().StringVar(&from, "from", "", "Start of planning range (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&to, "to", "", "End of planning range (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&mode, "mode", string(engine.ModeStrict), "Solve mode: strict or relaxed")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Published solution JSON to minimize changes against")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log solver progress")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("patch")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
