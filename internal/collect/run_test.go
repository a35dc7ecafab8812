package collect

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

// setupTree creates a small directory tree with fixed modification times.
func setupTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	files := map[string]int{
		"a.txt":            10,
		"b.log":            20,
		"sub/c.txt":        30,
		"sub/deep/d.go":    40,
		"skip/e.txt":       50,
		"sub/deep/tiny.go": 1,
	}

	mtime := time.Unix(1_600_000_000, 0)

	for name, size := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("failed to set times: %v", err)
		}
	}

	return root
}

func TestRun_NonRecursive(t *testing.T) {
	root := setupTree(t)

	result, err := Run(context.Background(), Options{Paths: []string{root}, TimeSource: TimeSourceModified}, nil, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FileCount != 2 {
		t.Errorf("expected 2 files, got %d", result.FileCount)
	}
	if result.TotalBytes != 30 {
		t.Errorf("expected 30 bytes, got %d", result.TotalBytes)
	}

	want := filepath.ToSlash(filepath.Join(root, "a.txt"))
	if result.Entries[0].Path != want {
		t.Errorf("expected first entry %s, got %s", want, result.Entries[0].Path)
	}
}

func TestRun_Recursive(t *testing.T) {
	root := setupTree(t)

	result, err := Run(context.Background(), Options{
		Paths:      []string{root},
		Recursive:  true,
		TimeSource: TimeSourceModified,
	}, nil, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FileCount != 6 {
		t.Errorf("expected 6 files, got %d", result.FileCount)
	}
	if result.TotalBytes != 151 {
		t.Errorf("expected 151 bytes, got %d", result.TotalBytes)
	}

	t.Run("modification time used as creation", func(t *testing.T) {
		for _, e := range result.Entries {
			if !e.Created.Equal(e.Modified) {
				t.Errorf("expected created == modified for %s", e.Path)
			}
			if !e.Modified.Equal(time.Unix(1_600_000_000, 0)) {
				t.Errorf("unexpected modification time %v for %s", e.Modified, e.Path)
			}
		}
	})

	t.Run("entries sorted by path", func(t *testing.T) {
		for i := 1; i < len(result.Entries); i++ {
			if result.Entries[i-1].Path > result.Entries[i].Path {
				t.Errorf("entries out of order: %s before %s", result.Entries[i-1].Path, result.Entries[i].Path)
			}
		}
	})
}

func TestRun_Filters(t *testing.T) {
	root := setupTree(t)

	tests := []struct {
		name  string
		opt   Options
		files int64
		bytes int64
	}{
		{
			name:  "depth limit",
			opt:   Options{Recursive: true, Depth: 2},
			files: 4,
			bytes: 110,
		},
		{
			name:  "exclude regex",
			opt:   Options{Recursive: true, Excludes: []string{`.*/skip$`}},
			files: 5,
			bytes: 101,
		},
		{
			name:  "include extension",
			opt:   Options{Recursive: true, Extensions: []string{".txt"}},
			files: 3,
			bytes: 90,
		},
		{
			name:  "exclude extension",
			opt:   Options{Recursive: true, Extensions: []string{"!.go"}},
			files: 4,
			bytes: 110,
		},
		{
			name:  "min size",
			opt:   Options{Recursive: true, MinSize: 25},
			files: 3,
			bytes: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opt.Paths = []string{root}
			tt.opt.TimeSource = TimeSourceModified

			result, err := Run(context.Background(), tt.opt, nil, nil)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if result.FileCount != tt.files {
				t.Errorf("expected %d files, got %d", tt.files, result.FileCount)
			}
			if result.TotalBytes != tt.bytes {
				t.Errorf("expected %d bytes, got %d", tt.bytes, result.TotalBytes)
			}
		})
	}
}

func TestRun_MultiplePaths(t *testing.T) {
	first := setupTree(t)
	second := setupTree(t)

	result, err := Run(context.Background(), Options{Paths: []string{first, second}}, nil, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FileCount != 4 {
		t.Errorf("expected 4 files, got %d", result.FileCount)
	}
}

func TestRun_BirthTimeSource(t *testing.T) {
	root := setupTree(t)

	result, err := Run(context.Background(), Options{Paths: []string{root}, TimeSource: TimeSourceBirth}, nil, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, e := range result.Entries {
		if e.Created.IsZero() {
			t.Errorf("expected a creation time for %s", e.Path)
		}
	}

	if result.BirthTimeMissing < 0 || result.BirthTimeMissing > result.FileCount {
		t.Errorf("unexpected missing birth time count %d", result.BirthTimeMissing)
	}
}

func TestRun_Errors(t *testing.T) {
	root := setupTree(t)

	t.Run("missing path", func(t *testing.T) {
		_, err := Run(context.Background(), Options{Paths: []string{filepath.Join(root, "nope")}}, nil, nil)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})

	t.Run("not a directory", func(t *testing.T) {
		_, err := Run(context.Background(), Options{Paths: []string{filepath.Join(root, "a.txt")}}, nil, nil)
		if err == nil {
			t.Error("expected error for file path")
		}
	})

	t.Run("invalid regex", func(t *testing.T) {
		_, err := Run(context.Background(), Options{Paths: []string{root}, Excludes: []string{"("}}, nil, nil)
		if err == nil {
			t.Error("expected error for invalid regex")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, Options{Paths: []string{root}, Recursive: true}, nil, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestRun_ProgressHook(t *testing.T) {
	root := setupTree(t)

	calls := make(chan struct{}, 100)
	hook := func(_, _ int64) {
		select {
		case calls <- struct{}{}:
		default:
		}
	}

	_, err := Run(context.Background(), Options{
		Paths:            []string{root},
		Recursive:        true,
		ProgressInterval: time.Nanosecond,
	}, nil, hook)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestCalculateDepth(t *testing.T) {
	sep := string(filepath.Separator)

	tests := []struct {
		path string
		want int
	}{
		{path: "root", want: 0},
		{path: "root" + sep + "a", want: 1},
		{path: "root" + sep + "a" + sep + "b", want: 2},
	}

	for _, tt := range tests {
		if got := calculateDepth(tt.path, "root"); got != tt.want {
			t.Errorf("calculateDepth(%q): expected %d, got %d", tt.path, tt.want, got)
		}
	}
}

func TestShouldIncludeByExtension(t *testing.T) {
	include, exclude := splitExtensions([]string{".go", "'!_test.go'"})

	tests := []struct {
		path string
		want bool
	}{
		{path: "main.go", want: true},
		{path: "main_test.go", want: false},
		{path: "README.md", want: false},
	}

	for _, tt := range tests {
		if got := shouldIncludeByExtension(tt.path, include, exclude); got != tt.want {
			t.Errorf("shouldIncludeByExtension(%q): expected %v, got %v", tt.path, tt.want, got)
		}
	}
}

func TestShouldExcludeByPattern(t *testing.T) {
	patterns := []*regexp.Regexp{regexp.MustCompile(`.*\.git/.*`)}

	if shouldExcludeByPattern("repo/.git/config", patterns) == nil {
		t.Error("expected .git path to be excluded")
	}
	if shouldExcludeByPattern("repo/main.go", patterns) != nil {
		t.Error("expected main.go not to be excluded")
	}
	if shouldExcludeByPattern("anything", nil) != nil {
		t.Error("expected no exclusion without patterns")
	}
}
