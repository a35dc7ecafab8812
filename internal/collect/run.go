package collect

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/idelchi/dugraph/internal/fstat"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// shouldIncludeByExtension checks if file should be included based on extension filters.
// Returns true if file should be included, false if excluded.
func shouldIncludeByExtension(path string, include, exclude map[string]struct{}) bool {
	// Check excludes first
	for ext := range exclude {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}
	// If no include filter, include all
	if len(include) == 0 {
		return true
	}
	// Check includes
	for ext := range include {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}

// splitExtensions separates include and '!'-prefixed exclude suffixes.
func splitExtensions(extensions []string) (map[string]struct{}, map[string]struct{}) {
	include := make(map[string]struct{}, len(extensions))
	exclude := make(map[string]struct{}, len(extensions))

	for _, e := range extensions { //nolint:varnamelen // e is standard for element in range
		e = strings.Trim(e, "'\"") // Strip quotes first

		if strings.HasPrefix(e, "!") {
			exclude[strings.TrimPrefix(e, "!")] = struct{}{}
		} else {
			include[e] = struct{}{}
		}
	}

	return include, exclude
}

// compileExcludes compiles the exclusion patterns.
func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	regexes := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		regexes = append(regexes, re)
	}

	return regexes, nil
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// displayPather makes walked paths relative to the working directory, or
// absolute when the walked root lies outside it.
type displayPather struct {
	cwd        string
	outsideCwd bool
}

func newDisplayPather(cwd, root string) (displayPather, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return displayPather{}, fmt.Errorf("resolving absolute path: %w", err)
	}

	rel, err := filepath.Rel(cwd, absRoot)

	return displayPather{
		cwd:        cwd,
		outsideCwd: err != nil || strings.HasPrefix(rel, ".."),
	}, nil
}

func (d displayPather) path(path string) string {
	var display string

	if d.outsideCwd {
		abs, err := filepath.Abs(path)
		if err != nil {
			display = path
		} else {
			display = abs
		}
	} else {
		rel, err := filepath.Rel(d.cwd, path)
		if err != nil {
			display = path
		} else {
			display = rel
		}
	}

	return strings.TrimPrefix(filepath.ToSlash(display), "./")
}

// Run walks every directory in opt.Paths and returns the collected entries.
//
// Without opt.Recursive only the files directly inside each directory are
// collected; otherwise opt.Depth > 0 limits the traversal depth. Files are
// filtered by opt.Excludes, opt.Extensions and opt.MinSize. Unreadable entries
// are counted and skipped.
//
// The walk can be cancelled via ctx. Progress updates are sent to
// progressHook if provided.
//
//nolint:gocognit,funlen,cyclop // Walk callback carries all filters.
func Run(ctx context.Context, opt Options, log *zap.Logger, progressHook func(int64, int64)) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	paths := opt.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	depth := opt.Depth
	if !opt.Recursive {
		depth = 1
	}

	if opt.TimeSource == "" {
		opt.TimeSource = TimeSourceBirth
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	roots := make([]string, 0, len(paths))

	for _, path := range paths {
		// Normalize to native format to handle both C:/Path and C:\Path inputs
		path = filepath.Clean(path)

		if statInfo, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("accessing path %q: %w", path, err)
		} else if !statInfo.IsDir() {
			return nil, fmt.Errorf("path %q is not a directory", path)
		}

		roots = append(roots, path)
	}

	extInclude, extExclude := splitExtensions(opt.Extensions)

	excludeRegexes, err := compileExcludes(opt.Excludes)
	if err != nil {
		return nil, err
	}

	log.Debug("collecting",
		zap.Strings("paths", roots),
		zap.Int("depth", depth),
		zap.Strings("extensions", opt.Extensions),
		zap.Strings("excludes", opt.Excludes),
		zap.Int64("min_size", opt.MinSize),
		zap.String("time_source", string(opt.TimeSource)),
	)

	collector := newCollector()

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	for _, root := range roots {
		display, err := newDisplayPather(cwd, root)
		if err != nil {
			return nil, err
		}

		//nolint:varnamelen // d is standard for DirEntry
		walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Debug("error accessing path", zap.String("path", path), zap.Error(err))
				collector.addError()

				return nil // Skip unreadable entries
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if currentDepth := calculateDepth(path, root); depth > 0 && currentDepth > depth {
				if d.IsDir() {
					log.Debug("skipping directory beyond depth", zap.String("path", path), zap.Int("depth", depth))

					return filepath.SkipDir
				}

				return nil
			}

			if re := shouldExcludeByPattern(path, excludeRegexes); re != nil {
				log.Debug("excluding path",
					zap.String("path", filepath.ToSlash(path)),
					zap.String("regex", re.String()),
				)

				if d.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				log.Debug("error reading file info", zap.String("path", path), zap.Error(err))
				collector.addError()

				return nil //nolint:nilerr // Intentionally skip errors during walk
			}

			if info.Size() < opt.MinSize {
				return nil
			}

			if !shouldIncludeByExtension(path, extInclude, extExclude) {
				log.Debug("excluding file (extension filter)", zap.String("path", path))

				return nil
			}

			modified := info.ModTime()
			created, known := modified, true

			if opt.TimeSource == TimeSourceBirth {
				if birth, ok := birthTime(path, info); ok {
					created = birth
				} else {
					known = false
				}
			}

			collector.add(fstat.Entry{
				Path:     display.path(path),
				Size:     info.Size(),
				Created:  created,
				Modified: modified,
			}, known)

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walking %q: %w", root, walkErr)
		}
	}

	result := collector.finalize()
	result.Elapsed = time.Since(start)

	if result.BirthTimeMissing > 0 {
		log.Debug("birth time unavailable, using modification time",
			zap.Int64("files", result.BirthTimeMissing))
	}

	return result, nil
}
