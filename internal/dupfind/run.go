package dupfind

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charlievieth/fastwalk"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		//nolint:forbidigo // Debug output to console
		fmt.Printf(format, args...)
	}
}

// startProgressReporter invokes hook(files, pathBytes) on each tick until ctx is done.
// The returned channel is closed once the reporter has stopped.
func startProgressReporter(ctx context.Context, r *Registry, hook func(int64, int64), interval time.Duration) <-chan struct{} {
	done := make(chan struct{})

	if hook == nil {
		close(done)

		return done
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(r.progress())
			case <-ctx.Done():
				return
			}
		}
	}()

	return done
}

// walker registers the regular files below a root directory.
type walker struct {
	opt      Options
	registry *Registry
	sem      *semaphore.Weighted
	log      logger
	register func(path string) error
}

// newWalker creates a walker registering into registry.
func newWalker(opt Options, registry *Registry) *walker {
	return &walker{
		opt:      opt,
		registry: registry,
		sem:      semaphore.NewWeighted(int64(opt.Workers)),
		log:      logger{enabled: opt.Debug},
		register: func(path string) error {
			_, err := registry.Register(path)

			return err
		},
	}
}

// walk registers the regular files of dir, descending into subdirectories when
// opt.Recurse is set. Registration runs on up to opt.Workers goroutines shared
// by the whole walk; all tasks started for dir have finished when walk returns.
func (w *walker) walk(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(w.opt.Diagnostics, "failed to open directory %s: %v\n", dir, err)
		w.registry.addError()

		return nil
	}

	var group errgroup.Group

	walkErr := func() error {
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(dir, entry.Name())

			if w.opt.LogPath != "" && path == w.opt.LogPath {
				w.log.printf("[debug]: skipping log file: %s\n", path)

				continue
			}

			info, err := fastwalk.StatDirEntry(path, entry)
			if err != nil {
				fmt.Fprintf(w.opt.Diagnostics, "failed to stat %s: %v\n", path, err)
				w.registry.addError()

				continue
			}

			switch {
			case info.IsDir():
				if !w.opt.Recurse {
					w.log.printf("[debug]: skipping directory (not recursing): %s\n", path)

					continue
				}

				if err := w.walk(ctx, path); err != nil {
					return err
				}
			case info.Mode().IsRegular():
				if err := w.sem.Acquire(ctx, 1); err != nil {
					return err
				}

				group.Go(func() error {
					defer w.sem.Release(1)

					return w.register(path)
				})
			default:
				w.log.printf("[debug]: skipping special file: %s\n", path)
			}
		}

		return nil
	}()

	if err := group.Wait(); err != nil && walkErr == nil {
		walkErr = err
	}

	return walkErr
}

// Scan walks opt.Path and returns the frozen inventory of regular files.
// Directories, including the root, and entries that cannot be read are
// reported to opt.Diagnostics, counted in Inventory.ErrorCount and skipped.
//
// The walk can be cancelled via ctx. Progress updates are sent
// to progressHook if provided.
func Scan(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Inventory, error) {
	opt = opt.withDefaults()

	// Normalize to native format so joined entry paths compare equal to LogPath
	opt.Path = filepath.Clean(opt.Path)
	if opt.LogPath != "" {
		opt.LogPath = filepath.Clean(opt.LogPath)
	}

	return newWalker(opt, NewRegistry(opt.Workers)).scan(ctx, progressHook)
}

// scan walks the root and freezes the registry. The progress reporter has
// stopped by the time scan returns.
func (w *walker) scan(ctx context.Context, progressHook func(int64, int64)) (*Inventory, error) {
	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)

	reporterDone := startProgressReporter(ctx, w.registry, progressHook, w.opt.ProgressInterval)

	defer func() {
		cancel()
		<-reporterDone
	}()

	w.log.printf("[debug]: scanning %s (recurse=%t, workers=%d)\n", w.opt.Path, w.opt.Recurse, w.opt.Workers)

	start := time.Now()

	if err := w.walk(ctx, w.opt.Path); err != nil {
		return nil, err
	}

	inventory := w.registry.Freeze()
	inventory.Elapsed = time.Since(start)

	w.log.printf("[debug]: registered %d files in %v\n", len(inventory.Records), inventory.Elapsed)

	return inventory, nil
}
