package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"worldforge/internal/store"
)

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "Inspect the world repository",
}

var worldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored world",
	Args:  cobra.NoArgs,
	RunE:  runWorldsList,
}

var worldsRunsCmd = &cobra.Command{
	Use:   "runs [world-id]",
	Short: "Show the generation history of one world",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorldsRuns,
}

var worldsDeleteCmd = &cobra.Command{
	Use:   "delete [world-id]",
	Short: "Remove a world and its run history from the repository",
	Long: `Removes the stored model and run history. Artifact trees on disk
are not touched; remove them under the output root if needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runWorldsDelete,
}

func init() {
	worldsCmd.AddCommand(worldsListCmd)
	worldsCmd.AddCommand(worldsRunsCmd)
	worldsCmd.AddCommand(worldsDeleteCmd)
}

func openStore() (*store.WorldStore, error) {
	if cfg.Store.DatabasePath == "" {
		return nil, fmt.Errorf("world repository disabled (store.database_path is empty)")
	}
	s, err := store.Open(cfg.Store.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open world store: %w", err)
	}
	return s, nil
}

func runWorldsList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	worlds, err := s.ListWorlds(context.Background())
	if err != nil {
		return err
	}
	if len(worlds) == 0 {
		fmt.Println("No worlds stored.")
		return nil
	}

	fmt.Printf("%-24s %-24s %-8s %s\n", "ID", "NAME", "THEME", "UPDATED")
	for _, w := range worlds {
		fmt.Printf("%-24s %-24s %-8s %s\n",
			w.ID, w.Name, w.Theme, w.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runWorldsRuns(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(context.Background(), args[0])
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("No runs recorded for %s.\n", args[0])
		return nil
	}

	fmt.Printf("%-36s %-8s %-10s %-10s %s\n", "RUN", "STATE", "ARTIFACTS", "DROPPED", "STARTED")
	for _, r := range runs {
		fmt.Printf("%-36s %-8s %-10d %-10d %s\n",
			r.RunID, r.State, r.ArtifactCount, r.RejectionCount,
			r.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runWorldsDelete(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteWorld(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s from the repository.\n", args[0])
	return nil
}
