package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldforge/internal/compiler"
	"worldforge/internal/model"
	"worldforge/internal/store"
)

var noStore bool

var generateCmd = &cobra.Command{
	Use:   "generate [model.json]",
	Short: "Compile one world model into an artifact tree",
	Long: `Reads a raw world model file, validates it, and emits the full
artifact set under the configured output root:

  <output_root>/<world-id>/classes/   generated source classes
  <output_root>/<world-id>/records/   self-contained data records
  <output_root>/<world-id>/scene/     scene descriptor

Non-fatal validation problems (a malformed NPC, an unknown reward key)
drop the offending entity and are reported at the end; only a model that
is not an object at all aborts the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&noStore, "no-store", false, "Skip persisting the world and run to the repository")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	raw, err := readRawModel(args[0])
	if err != nil {
		return err
	}

	c, closeRepo, err := buildCompiler()
	if err != nil {
		return err
	}
	defer closeRepo()

	logger.Info("Compiling world model", zap.String("file", args[0]))
	m, err := c.Generate(ctx, raw)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	printManifest(m)
	return nil
}

// readRawModel loads a raw world model file as untyped JSON.
func readRawModel(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	return raw, nil
}

// buildCompiler assembles the compiler with its repository, honoring
// --no-store. The returned func closes the repository.
func buildCompiler() (*compiler.Compiler, func(), error) {
	if noStore || cfg.Store.DatabasePath == "" {
		return compiler.New(cfg), func() {}, nil
	}

	repo, err := store.Open(cfg.Store.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open world store: %w", err)
	}
	return compiler.New(cfg, compiler.WithRepository(repo)), func() { repo.Close() }, nil
}

func printManifest(m *model.GenerationManifest) {
	fmt.Printf("World:     %s (%s, theme %s)\n", m.WorldName, m.WorldID, m.Theme)
	fmt.Printf("Run:       %s [%s] in %s\n", m.RunID, m.State, m.FinishedAt.Sub(m.StartedAt).Round(0))
	fmt.Printf("Artifacts: %d sources, %d records, 1 scene\n", len(m.SourceFiles), len(m.RecordFiles))
	if len(m.MirrorFiles) > 0 {
		fmt.Printf("Mirror:    %d reference files\n", len(m.MirrorFiles))
	}
	if len(m.Rejections) > 0 {
		fmt.Printf("Dropped:   %d entities\n", len(m.Rejections))
		for _, r := range m.Rejections {
			fmt.Printf("  - %s\n", r)
		}
	}
}
