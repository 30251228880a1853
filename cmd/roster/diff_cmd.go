package main

import (
	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/engine"
)

type diffOutput struct {
	Added           []changedPair `json:"added"`
	Removed         []changedPair `json:"removed"`
	AffectedPersons []string      `json:"affected_persons"`
	TotalChanges    int           `json:"total_changes"`
}

type changedPair struct {
	EventID  string `json:"event_id"`
	PersonID string `json:"person_id"`
}

func newDiffCmd() *cobra.Command {
	var (
		previousPath string
		currentPath  string
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two solution files",
		RunE: func(cmd *cobra.Command, args []string) error {
			previous, err := loadBundleFile(previousPath)
			if err != nil {
				return err
			}
			current, err := loadBundleFile(currentPath)
			if err != nil {
				return err
			}
			return printJSON(toDiffOutput(engine.Diff(previous, current)))
		},
	}

	cmd.Flags().StringVar(&previousPath, "previous", "", "Previous solution JSON (required)")
	cmd.Flags().StringVar(&currentPath, "current", "", "Current solution JSON (required)")
	_ = cmd.MarkFlagRequired("previous")
	_ = cmd.MarkFlagRequired("current")
	return cmd
}

func toDiffOutput(d engine.SolutionDiff) diffOutput {
	out := diffOutput{
		Added:           make([]changedPair, 0, len(d.Added)),
		Removed:         make([]changedPair, 0, len(d.Removed)),
		AffectedPersons: make([]string, 0, len(d.AffectedPersons)),
		TotalChanges:    d.TotalChanges,
	}
	for _, c := range d.Added {
		out.Added = append(out.Added, changedPair{EventID: string(c.EventID), PersonID: string(c.PersonID)})
	}
	for _, c := range d.Removed {
		out.Removed = append(out.Removed, changedPair{EventID: string(c.EventID), PersonID: string(c.PersonID)})
	}
	for _, p := range d.AffectedPersons {
		out.AffectedPersons = append(out.AffectedPersons, string(p))
	}
	return out
}
