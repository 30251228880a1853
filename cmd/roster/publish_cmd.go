package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/engine"
	"github.com/warp/roster-engine/store/sqlite"
)

func newPublishCmd() *cobra.Command {
	var (
		dbPath       string
		solutionPath string
		org          string
		tag          string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a solution as the current baseline for an org and tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := loadBundleFile(solutionPath)
			if err != nil {
				return err
			}

			store, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			orgID := engine.OrgID(org)
			if orgID == "" {
				orgID = bundle.Meta.OrgID
			}
			if orgID == "" {
				return fmt.Errorf("solution carries no org id, pass --org")
			}

			if err := store.Publish(cmd.Context(), orgID, tag, bundle); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s as baseline for org=%s tag=%s\n",
				bundle.Meta.ID, orgID, tag)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "roster.db", "SQLite database path")
	cmd.Flags().StringVar(&solutionPath, "solution", "", "Solution JSON to publish (required)")
	cmd.Flags().StringVar(&org, "org", "", "Org id (defaults to the solution's org)")
	cmd.Flags().StringVar(&tag, "tag", "default", "Baseline tag")
	_ = cmd.MarkFlagRequired("solution")
	return cmd
}

type historyEntry struct {
	SolutionID  string `json:"solution_id"`
	OrgID       string `json:"org_id"`
	Tag         string `json:"tag"`
	PublishedAt string `json:"published_at"`
}

func newHistoryCmd() *cobra.Command {
	var (
		dbPath string
		org    string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List published baselines for an org, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.ListPublished(cmd.Context(), engine.OrgID(org))
			if err != nil {
				return err
			}

			entries := make([]historyEntry, 0, len(records))
			for _, r := range records {
				entries = append(entries, historyEntry{
					SolutionID:  string(r.Bundle.Meta.ID),
					OrgID:       string(r.OrgID),
					Tag:         r.Tag,
					PublishedAt: r.PublishedAt.UTC().Format(time.RFC3339),
				})
			}
			return printJSON(entries)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "roster.db", "SQLite database path")
	cmd.Flags().StringVar(&org, "org", "", "Org id (required)")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}
