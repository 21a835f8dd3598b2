// Package packager performs the single-pass depth-first traversal that
// feeds included files into the destination archive.
package packager

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"

	"github.com/quantmind-br/srcpack-go/internal/archive"
	"github.com/quantmind-br/srcpack-go/internal/domain"
	"github.com/quantmind-br/srcpack-go/internal/ignore"
	"github.com/quantmind-br/srcpack-go/internal/strip"
	"github.com/quantmind-br/srcpack-go/internal/utils"
)

// Options configures a Packager.
type Options struct {
	// Global holds the preset or custom-config rule set.
	Global *ignore.RuleSet
	// KeepGitDir copies the .git subtree verbatim instead of excluding it.
	KeepGitDir bool
	// ArchivePath is the destination zip path.
	ArchivePath string
	// Compression selects the archive codec (see archive.Methods).
	Compression string
	// RemoveComments strips comments from supported source files.
	RemoveComments bool
	// Progress shows a spinner while packing.
	Progress bool
	Logger   *utils.Logger
}

// Packager walks a source tree depth-first, consults the exclusion
// resolver at every entry, and writes included files to the archive.
// A Packager is single-use and not safe for concurrent use; the
// ancestor rule-set stack is its only mutable traversal state.
type Packager struct {
	global         *ignore.RuleSet
	resolver       *ignore.Resolver
	archivePath    string
	compression    string
	removeComments bool
	progress       bool
	logger         *utils.Logger

	writer *archive.Writer
	stack  []*ignore.RuleSet
	stats  *domain.Statistics
	bar    *progressbar.ProgressBar
}

// New creates a Packager.
func New(opts Options) *Packager {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	global := opts.Global
	if global == nil {
		global = ignore.NewRuleSet("")
	}

	return &Packager{
		global:         global,
		resolver:       ignore.NewResolver(opts.KeepGitDir),
		archivePath:    opts.ArchivePath,
		compression:    opts.Compression,
		removeComments: opts.RemoveComments,
		progress:       opts.Progress,
		logger:         logger.WithComponent("packager"),
	}
}

// Run packages sourceRoot into the destination archive and returns the
// accumulated statistics. Failure to create or write the archive is
// fatal; a single unreadable file is logged, counted as a warning, and
// skipped.
func (p *Packager) Run(ctx context.Context, sourceRoot string) (*domain.Statistics, error) {
	p.stats = &domain.Statistics{}
	start := time.Now()

	writer, err := archive.NewWriter(p.archivePath, p.compression)
	if err != nil {
		return nil, err
	}
	p.writer = writer

	if p.progress {
		p.bar = utils.NewProgressBar(-1, utils.DescPacking)
	}

	p.stack = append(p.stack[:0], p.global)
	walkErr := p.walkDir(ctx, sourceRoot, "")

	closeErr := writer.Close()
	if p.bar != nil {
		_ = p.bar.Finish()
	}
	if walkErr != nil {
		return nil, walkErr
	}
	if closeErr != nil {
		return nil, closeErr
	}

	if info, err := os.Stat(p.archivePath); err == nil {
		p.stats.CompressedSize = info.Size()
	}
	p.stats.Elapsed = time.Since(start)

	return p.stats, nil
}

// walkDir visits one directory pre-order. The local ignore rule set is
// pushed before descending and popped on every exit path so rules
// never leak into sibling subtrees.
func (p *Packager) walkDir(ctx context.Context, dir, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	local, err := ignore.LoadLocal(dir, rel)
	if err != nil {
		p.stats.Warnings++
		p.logger.Warn().Err(err).Str("dir", rel).Msg("Failed to read ignore file")
	}
	p.stack = append(p.stack, local)
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return err
		}
		p.stats.Warnings++
		p.logger.Warn().Err(err).Str("dir", rel).Msg("Failed to read directory")
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		entryRel := name
		if rel != "" {
			entryRel = rel + "/" + name
		}

		if entry.IsDir() {
			if name == ignore.GitDirName && p.resolver.KeepGitDir() {
				// Opaque subtree: copied verbatim, no rule evaluation inside.
				if err := p.copyVerbatim(ctx, filepath.Join(dir, name), entryRel); err != nil {
					return err
				}
				continue
			}
			if p.resolver.IsExcluded(entryRel, true, p.stack) {
				// Pruned: nothing beneath is evaluated.
				p.stats.ExcludedDirs++
				p.logger.Debug().Str("dir", entryRel).Msg("Excluded directory")
				continue
			}
			if err := p.walkDir(ctx, filepath.Join(dir, name), entryRel); err != nil {
				return err
			}
			continue
		}

		p.stats.TotalFiles++
		if p.resolver.IsExcluded(entryRel, false, p.stack) {
			p.stats.ExcludedFiles++
			p.logger.Debug().Str("file", entryRel).Msg("Excluded file")
			continue
		}
		if err := p.addFile(filepath.Join(dir, name), entryRel, entry, p.removeComments); err != nil {
			return err
		}
	}

	return nil
}

// addFile reads one file and stores it in the archive, optionally
// stripping comments first. Read failures are recoverable.
func (p *Packager) addFile(path, rel string, entry fs.DirEntry, stripComments bool) error {
	info, err := entry.Info()
	if err != nil {
		p.stats.Warnings++
		p.logger.Warn().Err(err).Str("file", rel).Msg("Failed to stat file")
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		p.stats.Warnings++
		p.logger.Warn().Err(err).Str("file", rel).Msg("Failed to read file")
		return nil
	}

	p.stats.TotalSize += int64(len(content))

	// Binary files are stored verbatim, never stripped.
	if stripComments && utf8.Valid(content) {
		if stripped, changed := strip.Apply(string(content), filepath.Ext(rel)); changed {
			content = []byte(stripped)
			p.stats.CommentsRemoved++
		}
	}

	if err := p.writer.Add(rel, info.Mode(), info.ModTime(), content); err != nil {
		return err
	}

	p.stats.IncludedFiles++
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
	p.logger.Debug().Str("file", rel).Int("bytes", len(content)).Msg("Added")
	return nil
}

// copyVerbatim stores every file beneath dir unchanged. Used for the
// .git subtree under keep-git presets, where pattern evaluation
// against version-control internals would be wasted work.
func (p *Packager) copyVerbatim(ctx context.Context, dir, rel string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			p.stats.Warnings++
			p.logger.Warn().Err(err).Str("path", path).Msg("Failed to visit entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}

		sub, err := filepath.Rel(dir, path)
		if err != nil {
			p.stats.Warnings++
			p.logger.Warn().Err(err).Str("path", path).Msg("Failed to compute entry path")
			return nil
		}

		p.stats.TotalFiles++
		return p.addFile(path, rel+"/"+filepath.ToSlash(sub), d, false)
	})
}
