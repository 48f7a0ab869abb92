package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldforge/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and regenerate worlds as models change",
	Long: `Watches a directory for world model files (*.json). When a file
settles after editing it is compiled like 'forge generate'. Deleting a
model file does not remove its artifact tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, closeRepo, err := buildCompiler()
	if err != nil {
		return err
	}
	defer closeRepo()

	handler := func(ctx context.Context, path string, raw any) {
		m, err := c.Generate(ctx, raw)
		if err != nil {
			logger.Error("Regeneration failed", zap.String("file", path), zap.Error(err))
			fmt.Printf("%-24s failed: %v\n", path, err)
			return
		}
		fmt.Printf("%-24s %s  %d artifacts, %d dropped\n",
			m.WorldID, m.State, m.ArtifactCount(), len(m.Rejections))
	}

	w, err := watch.New(args[0], handler)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Printf("Watching %s for world models. Ctrl-C to stop.\n", args[0])

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	stats := w.Snapshot()
	fmt.Printf("Stopped: %d runs triggered, %d errors\n", stats.RunsTriggered, stats.Errors)
	return nil
}
