package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"worldforge/internal/model"
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir|model.json...]",
	Short: "Compile many world models concurrently",
	Long: `Compiles every given model file, or every *.json file in a given
directory. Worlds are independent, so runs proceed in parallel up to
generator.batch_workers; a failing model does not stop the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	files, err := collectModelFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no model files found")
	}

	c, closeRepo, err := buildCompiler()
	if err != nil {
		return err
	}
	defer closeRepo()

	logger.Info("Starting batch",
		zap.Int("models", len(files)),
		zap.Int("workers", cfg.Generator.BatchWorkers))

	var (
		mu        sync.Mutex
		manifests []*model.GenerationManifest
		failures  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Generator.BatchWorkers)
	for _, file := range files {
		file := file
		g.Go(func() error {
			raw, err := readRawModel(file)
			if err == nil {
				var m *model.GenerationManifest
				m, err = c.Generate(gctx, raw)
				if m != nil {
					mu.Lock()
					manifests = append(manifests, m)
					mu.Unlock()
				}
			}
			if err != nil {
				logger.Error("Batch model failed", zap.String("file", file), zap.Error(err))
				mu.Lock()
				failures++
				mu.Unlock()
			}
			// Per-model failures are tallied, not propagated; one bad
			// model must not cancel the rest of the batch.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, m := range manifests {
		if m.State == model.RunDone {
			fmt.Printf("%-24s %s  %d artifacts, %d dropped\n",
				m.WorldID, m.State, m.ArtifactCount(), len(m.Rejections))
		} else {
			fmt.Printf("%-24s %s  %s\n", m.WorldID, m.State, m.Error)
		}
	}
	fmt.Printf("Batch: %d/%d models compiled\n", len(files)-failures, len(files))

	if failures > 0 {
		return fmt.Errorf("%d of %d models failed", failures, len(files))
	}
	return nil
}

// collectModelFiles expands directories into their *.json files and keeps
// explicit file arguments as-is. Sorted for a stable batch order.
func collectModelFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}
