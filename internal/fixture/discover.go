package fixture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultPatterns match the suite files discovered when none are configured.
var DefaultPatterns = []string{
	"**/*.test.yaml",
	"**/*.spec.yaml",
	"**/*.test.cue",
	"**/*.spec.cue",
}

// DefaultIgnore lists directory names skipped during discovery.
var DefaultIgnore = []string{"node_modules", ".git"}

// MaxWorkers caps parallel file loading.
const MaxWorkers = 64

// Discover walks root and returns the files matching any of the patterns,
// sorted by path. Patterns are doublestar globs matched against the
// slash-separated path relative to root. Directories whose name is in
// ignore are skipped.
func Discover(ctx context.Context, root string, patterns, ignore []string) ([]string, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}

	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return fmt.Errorf("access error at %s: %w", path, walkErr)
		}

		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if matchesAnyPattern(path, root, patterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func matchesAnyPattern(path, root string, patterns []string) bool {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// LoadAll loads files in parallel with at most workers concurrent loads
// (GOMAXPROCS when workers <= 0). Loaded files are returned in the order of
// paths; failures are joined into the returned error in the same order.
func LoadAll(ctx context.Context, paths []string, workers int) ([]*File, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	loaded := make([]*File, len(paths))
	errs := make([]error, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			f, err := Load(path)

			mu.Lock()
			defer mu.Unlock()
			loaded[i] = f
			errs[i] = err
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]*File, 0, len(paths))
	for _, f := range loaded {
		if f != nil {
			files = append(files, f)
		}
	}
	return files, errors.Join(errs...)
}
