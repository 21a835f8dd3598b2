package packager

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/quantmind-br/srcpack-go/internal/archive"
	"github.com/quantmind-br/srcpack-go/internal/config"
	"github.com/quantmind-br/srcpack-go/internal/domain"
	"github.com/quantmind-br/srcpack-go/internal/ignore"
	"github.com/quantmind-br/srcpack-go/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (keyed by slash-relative path) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// archiveNames returns the sorted entry names of a zip archive.
func archiveNames(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// archiveContent returns the content of one entry.
func archiveContent(t *testing.T, path, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("entry %s not found in %s", name, path)
	return ""
}

func quietLogger() *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{Level: "error", Format: "json", Output: io.Discard})
}

func runPack(t *testing.T, source string, opts Options) (*domain.Statistics, string) {
	t.Helper()
	dest := filepath.Join(t.TempDir(), "out.zip")
	opts.ArchivePath = dest
	if opts.Compression == "" {
		opts.Compression = archive.MethodDeflate
	}
	opts.Logger = quietLogger()

	stats, err := New(opts).Run(context.Background(), source)
	require.NoError(t, err)
	return stats, dest
}

func TestRun_BasicPresetRoundTrip(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		"src/main.py":              "print('main')\n",
		"src/utils/helpers.py":     "def help(): pass\n",
		"node_modules/pkg/index.js": "module.exports = {};\n",
		".gitignore":               "node_modules/\n",
	})

	preset, err := config.GetPreset("basic")
	require.NoError(t, err)

	stats, dest := runPack(t, source, Options{
		Global: ignore.FromLines("", preset.Patterns),
	})

	assert.Equal(t, []string{".gitignore", "src/main.py", "src/utils/helpers.py"},
		archiveNames(t, dest))
	assert.Equal(t, 3, stats.IncludedFiles)
	assert.Equal(t, 1, stats.ExcludedDirs)
	assert.Positive(t, stats.CompressedSize)
	assert.Positive(t, stats.Elapsed)
}

func TestRun_PrunedDirectoryNeverEvaluated(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		"keep.txt":             "ok",
		"cache/a.bin":          "a",
		"cache/deep/b.bin":     "b",
		"cache/deep/er/c.bin":  "c",
	})

	stats, dest := runPack(t, source, Options{
		Global: ignore.FromLines("", []string{"cache/"}),
	})

	assert.Equal(t, []string{"keep.txt"}, archiveNames(t, dest))
	// Files beneath the pruned directory are never individually visited.
	assert.Equal(t, 1, stats.TotalFiles)
	assert.Equal(t, 1, stats.ExcludedDirs)
	assert.Equal(t, 0, stats.ExcludedFiles)
}

func TestRun_NegationReincludes(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		".gitignore":    "*.log\n!important.log\n",
		"important.log": "keep me",
		"other.log":     "drop me",
		"app.py":        "x = 1\n",
	})

	stats, dest := runPack(t, source, Options{})

	assert.Equal(t, []string{".gitignore", "app.py", "important.log"}, archiveNames(t, dest))
	assert.Equal(t, 1, stats.ExcludedFiles)
}

func TestRun_ChildIgnoreOverridesGlobal(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		"a.gen":          "excluded by global",
		"sub/.gitignore": "!*.gen\n",
		"sub/keep.gen":   "re-included locally",
	})

	_, dest := runPack(t, source, Options{
		Global: ignore.FromLines("", []string{"*.gen"}),
	})

	assert.Equal(t, []string{"sub/.gitignore", "sub/keep.gen"}, archiveNames(t, dest))
}

func TestRun_LocalRulesDoNotLeakToSiblings(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		"a/.gitignore": "*.txt\n",
		"a/skip.txt":   "excluded",
		"a/keep.md":    "included",
		"b/keep.txt":   "sibling unaffected",
	})

	_, dest := runPack(t, source, Options{})

	assert.Equal(t, []string{"a/.gitignore", "a/keep.md", "b/keep.txt"}, archiveNames(t, dest))
}

func TestRun_GitDirHandling(t *testing.T) {
	files := map[string]string{
		".git/HEAD":              "ref: refs/heads/main\n",
		".git/objects/ab/cdef":   "blob",
		".git/noise.log":         "would match *.log\n",
		"main.go":                "package main\n",
	}

	t.Run("excluded by default", func(t *testing.T) {
		source := t.TempDir()
		writeTree(t, source, files)

		stats, dest := runPack(t, source, Options{
			Global: ignore.FromLines("", []string{"*.log"}),
		})

		assert.Equal(t, []string{"main.go"}, archiveNames(t, dest))
		assert.Equal(t, 1, stats.ExcludedDirs)
	})

	t.Run("kept verbatim with keep git dir", func(t *testing.T) {
		source := t.TempDir()
		writeTree(t, source, files)

		stats, dest := runPack(t, source, Options{
			Global:     ignore.FromLines("", []string{"*.log"}),
			KeepGitDir: true,
		})

		// Every byte under .git survives regardless of other rules.
		assert.Equal(t, []string{
			".git/HEAD", ".git/noise.log", ".git/objects/ab/cdef", "main.go",
		}, archiveNames(t, dest))
		assert.Equal(t, "would match *.log\n", archiveContent(t, dest, ".git/noise.log"))
		assert.Equal(t, 4, stats.IncludedFiles)
	})
}

func TestRun_CommentRemoval(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		"app.py":  "# comment\nx = 1\n",
		"util.js": "// comment\nvar y = 2;\n",
		"data.md": "# heading stays\n",
	})

	stats, dest := runPack(t, source, Options{RemoveComments: true})

	assert.Equal(t, 2, stats.CommentsRemoved)
	assert.Equal(t, "x = 1\n", archiveContent(t, dest, "app.py"))
	assert.Equal(t, "\nvar y = 2;\n", archiveContent(t, dest, "util.js"))
	// Unsupported extensions pass through untouched.
	assert.Equal(t, "# heading stays\n", archiveContent(t, dest, "data.md"))
}

func TestRun_StatisticsAccuracy(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		"a.txt":        "a",
		"b.log":        "b",
		"c/d.txt":      "d",
		"skip/e.txt":   "e",
		"skip/f/g.txt": "g",
	})

	stats, _ := runPack(t, source, Options{
		Global: ignore.FromLines("", []string{"*.log", "skip/"}),
	})

	// Every visited entry is either included or excluded.
	assert.Equal(t, stats.TotalFiles, stats.IncludedFiles+stats.ExcludedFiles)
	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 2, stats.IncludedFiles)
	assert.Equal(t, 1, stats.ExcludedFiles)
	assert.Equal(t, 1, stats.ExcludedDirs)
	assert.Equal(t, 4, stats.EntriesVisited())
	assert.Equal(t, 0, stats.Warnings)
}

func TestRun_FatalDestinationError(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "a"})

	p := New(Options{
		ArchivePath: filepath.Join(t.TempDir(), "no", "such", "dir", "out.zip"),
		Compression: archive.MethodDeflate,
		Logger:      quietLogger(),
	})

	_, err := p.Run(context.Background(), source)
	require.Error(t, err)

	var arcErr *domain.ArchiveError
	require.ErrorAs(t, err, &arcErr)
	assert.True(t, domain.IsFatal(err))
}

func TestRun_ContextCancellation(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Options{
		ArchivePath: filepath.Join(t.TempDir(), "out.zip"),
		Compression: archive.MethodDeflate,
		Logger:      quietLogger(),
	})

	_, err := p.Run(ctx, source)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_Deterministic(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		".gitignore":   "*.tmp\n",
		"a.tmp":        "t",
		"b.txt":        "b",
		"sub/c.tmp":    "t",
		"sub/d.txt":    "d",
	})

	_, first := runPack(t, source, Options{})
	firstNames := archiveNames(t, first)

	for i := 0; i < 3; i++ {
		_, dest := runPack(t, source, Options{})
		assert.Equal(t, firstNames, archiveNames(t, dest))
	}
}
