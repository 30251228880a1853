package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/engine"
	"github.com/warp/roster-engine/factory"
)

func newValidateCmd() *cobra.Command {
	var (
		workspacePath string
		from          string
		to            string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a workspace document without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := factory.LoadWorkspace(workspacePath)
			if err != nil {
				return err
			}
			start, end, err := parseRangeFlags(from, to)
			if err != nil {
				return err
			}

			err = engine.Validate(ws, engine.Period{Start: start.StartOfDay(), End: end.EndOfDay()})
			var verr *engine.ValidationError
			if errors.As(err, &verr) {
				for _, issue := range verr.Issues {
					fmt.Fprintln(cmd.OutOrStdout(), "invalid:", issue)
				}
				return fmt.Errorf("workspace has %d validation issue(s)", len(verr.Issues))
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "workspace is valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&workspacePath, "workspace", "", "Workspace document (YAML or JSON, required)")
	cmd.Flags().StringVar(&from, "from", "", "Start of planning range (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&to, "to", "", "End of planning range (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
