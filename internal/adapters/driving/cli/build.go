package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sara-labs/sara-cli/internal/logger"
)

var (
	buildIndexPath string
	buildWatch     bool
)

var buildCmd = &cobra.Command{
	Use:   "build [dataset]",
	Short: "Build the vector index from a researcher dataset",
	Long: `Reads researcher records from a JSON dataset, embeds each record,
and writes the index pair (vector file plus metadata sidecar) to disk.

The build is all-or-nothing: a failed build never replaces a previously
persisted index. Degenerate records (missing name, affiliation, research
areas, or project fields) are skipped with a warning.

With --watch, the command stays running and rebuilds the index whenever
the dataset file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildIndexPath, "index", "o", "", "index output path (default from config)")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "rebuild when the dataset changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	dataPath := args[0]

	if indexService == nil {
		return errors.New("index service not configured")
	}

	indexPath := defaultIndexPath(buildIndexPath)

	if err := buildOnce(cmd, dataPath, indexPath); err != nil {
		if !buildWatch {
			return err
		}
		// In watch mode a failed build is reported, not fatal; the next
		// dataset change gets another chance.
		cmd.PrintErrf("Build failed: %v\n", err)
	}

	if !buildWatch {
		return nil
	}

	return watchAndRebuild(cmd, dataPath, indexPath)
}

func buildOnce(cmd *cobra.Command, dataPath, indexPath string) error {
	start := time.Now()
	stats, err := indexService.BuildIndex(cmd.Context(), dataPath, indexPath)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	cmd.Printf("Indexed %d researchers (%d skipped) in %s\n",
		stats.Indexed, stats.Skipped, time.Since(start).Round(time.Millisecond))
	cmd.Printf("Index: %s (dimension %d)\n", indexPath, stats.Dimensions)
	return nil
}

// watchAndRebuild blocks, rebuilding the index whenever the dataset is
// written. Editors replace files by rename, so the parent directory is
// watched and events are filtered by name.
func watchAndRebuild(cmd *cobra.Command, dataPath, indexPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(dataPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", dataPath)

	// Debounce: editors fire several events per save.
	const settle = 500 * time.Millisecond
	var timer *time.Timer
	rebuild := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(dataPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Dataset event: %s", event)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(settle, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})

		case <-rebuild:
			cmd.Printf("Dataset changed, rebuilding...\n")
			if err := buildOnce(cmd, dataPath, indexPath); err != nil {
				cmd.PrintErrf("Rebuild failed: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
