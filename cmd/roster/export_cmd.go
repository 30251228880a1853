package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/engine"
	"github.com/warp/roster-engine/export"
	"github.com/warp/roster-engine/factory"
)

func newExportCmd() *cobra.Command {
	var (
		workspacePath string
		solutionPath  string
		format        string
		outPath       string
		person        string
		team          string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a solution as JSON, CSV, XLSX, or ICS",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := loadBundleFile(solutionPath)
			if err != nil {
				return err
			}

			var ws *engine.Workspace
			if format != "json" {
				if workspacePath == "" {
					return fmt.Errorf("--workspace is required for %s export", format)
				}
				ws, err = factory.LoadWorkspace(workspacePath)
				if err != nil {
					return err
				}
			}

			var out io.Writer = os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "json":
				return export.WriteJSON(out, bundle)
			case "csv":
				return export.WriteCSV(out, ws, bundle)
			case "xlsx":
				return export.WriteXLSX(out, ws, bundle)
			case "ics":
				scope := export.CalendarScope{
					PersonID: engine.PersonID(person),
					TeamID:   engine.TeamID(team),
				}
				return export.WriteICS(out, ws, bundle, scope)
			default:
				return fmt.Errorf("unknown format %q (want json, csv, xlsx, or ics)", format)
			}
		},
	}

	cmd.Flags().StringVar(&workspacePath, "workspace", "", "Workspace document (required for csv, xlsx, ics)")
	cmd.Flags().StringVar(&solutionPath, "solution", "", "Solution JSON to export (required)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, csv, xlsx, ics")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&person, "person", "", "Limit ICS export to one person")
	cmd.Flags().StringVar(&team, "team", "", "Limit ICS export to one team")
	_ = cmd.MarkFlagRequired("solution")
	return cmd
}
