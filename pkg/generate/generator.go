// Package generate turns a template source tree plus a resolved
// Context into a populated destination. Rendering happens in an
// isolated staging directory and is only moved into place once the
// whole tree rendered cleanly, so a failed run never leaves a
// half-written destination behind.
package generate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/logging"
	"github.com/Keats/kickstart/pkg/render"
	"github.com/Keats/kickstart/pkg/schema"
)

// Generator renders one template into one destination
type Generator struct {
	def    *schema.Definition
	source string
	engine *render.Engine
}

// Report describes what a run did to the destination
type Report struct {
	// Created holds destination-relative paths of everything written
	Created []string
	// Deleted holds destination-relative paths removed by cleanup rules
	Deleted []string
	// CleanupErrors are per-path cleanup failures; they never fail the run
	CleanupErrors []error
}

// New creates a Generator for a template rooted at source
func New(def *schema.Definition, source string) *Generator {
	return &Generator{
		def:    def,
		source: source,
		engine: render.NewEngine(),
	}
}

// Generate renders every path and file of the source tree against the
// context, commits the staged result into outputDir and then runs the
// cleanup rules. Any render or write failure aborts before the
// destination is touched.
func (g *Generator) Generate(ctx *schema.Context, outputDir string) (*Report, error) {
	logger := logging.GetLogger("generate")

	dest, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDestConflict, "resolving %s", outputDir)
	}

	stage, err := os.MkdirTemp("", "kickstart-stage-")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "creating the staging directory")
	}
	defer func() {
		_ = os.RemoveAll(stage)
	}()

	copyPatterns, err := g.compileCopyPatterns(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	if err := g.renderTree(ctx, stage, dest, copyPatterns, report); err != nil {
		return nil, err
	}

	if err := commit(stage, dest); err != nil {
		return nil, err
	}
	logger.Info().Str("destination", dest).Int("files", len(report.Created)).Msg("Template generated")

	g.cleanup(ctx, dest, report)

	return report, nil
}

// compileCopyPatterns renders the copy_without_render globs against the
// context, since they may themselves contain substitution expressions
func (g *Generator) compileCopyPatterns(ctx *schema.Context) ([]string, error) {
	patterns := make([]string, 0, len(g.def.CopyWithoutRender))
	for _, p := range g.def.CopyWithoutRender {
		rendered, err := g.engine.Render("copy_without_render pattern", p, ctx)
		if err != nil {
			return nil, err
		}
		if !doublestar.ValidatePattern(rendered) {
			kerr := errors.Newf(errors.ErrBadPattern,
				"in copy_without_render, `%s` is not a valid pattern", p)
			if rendered != p {
				kerr = kerr.WithDetail("after_rendering", rendered)
			}
			return nil, kerr
		}
		patterns = append(patterns, rendered)
	}
	return patterns, nil
}

func (g *Generator) renderTree(ctx *schema.Context, stage, dest string, copyPatterns []string, report *Report) error {
	logger := logging.GetLogger("generate")

	source, err := filepath.Abs(g.source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceNotFound, "resolving %s", g.source)
	}

	return filepath.WalkDir(source, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.Wrapf(walkErr, errors.ErrFileRead, "walking %s", path)
		}
		if path == source {
			return nil
		}

		// Never descend into the destination when it's nested in the source
		if path == dest || strings.HasPrefix(path, dest+string(filepath.Separator)) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() && d.Name() == ".git" {
			return fs.SkipDir
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "walking %s", path)
		}
		relSlash := filepath.ToSlash(rel)

		// The schema file itself is never part of the output
		if relSlash == schema.DefinitionFilename {
			return nil
		}

		if g.ignored(relSlash) {
			logger.Debug().Str("path", relSlash).Msg("Ignored")
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		destRel, err := g.engine.RenderPath(relSlash, ctx)
		if err != nil {
			return err
		}
		if !filepath.IsLocal(filepath.FromSlash(destRel)) {
			return errors.Newf(errors.ErrRenderFailed,
				"path `%s` rendered to `%s`, which escapes the destination", relSlash, destRel)
		}
		target := filepath.Join(stage, filepath.FromSlash(destRel))

		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "creating %s", destRel)
			}
			return nil
		}

		buf, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "reading %s", relSlash)
		}

		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "reading %s", relSlash)
		}
		mode := info.Mode().Perm()

		// Rendered path segments can introduce directories of their own
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "creating parent of %s", destRel)
		}

		if matchAny(copyPatterns, destRel) || render.IsBinary(buf) {
			if err := os.WriteFile(target, buf, mode); err != nil {
				return errors.Wrapf(err, errors.ErrCopyFailed, "copying %s", relSlash)
			}
		} else {
			content, err := g.engine.Render(relSlash, string(buf), ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(target, []byte(content), mode); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "writing %s", destRel)
			}
		}

		report.Created = append(report.Created, destRel)
		return nil
	})
}

// ignored matches a source-relative path against the schema's ignore
// list: glob match, exact match, or prefix for whole subtrees
func (g *Generator) ignored(relSlash string) bool {
	for _, p := range g.def.Ignore {
		if relSlash == p || strings.HasPrefix(relSlash, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
		if matched, err := doublestar.Match(p, relSlash); err == nil && matched {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, relSlash string) bool {
	for _, p := range patterns {
		if matched, err := doublestar.Match(p, relSlash); err == nil && matched {
			return true
		}
	}
	return false
}

// commit moves the staged tree into the destination. Every staged
// top-level entry is checked for a collision first, so a conflicting
// destination fails before anything moves.
func commit(stage, dest string) error {
	entries, err := os.ReadDir(stage)
	if err != nil {
		return errors.Wrap(err, errors.ErrCommitFailed, "reading the staging directory")
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "creating %s", dest)
	}

	for _, e := range entries {
		if _, err := os.Lstat(filepath.Join(dest, e.Name())); err == nil {
			return errors.Newf(errors.ErrDestConflict,
				"`%s` already exists in %s", e.Name(), dest)
		}
	}

	for _, e := range entries {
		from := filepath.Join(stage, e.Name())
		to := filepath.Join(dest, e.Name())
		if err := os.Rename(from, to); err != nil {
			// Rename fails across filesystems, fall back to copying
			if cerr := copyTree(from, to); cerr != nil {
				return errors.Wrapf(cerr, errors.ErrCommitFailed, "moving %s into place", e.Name())
			}
		}
	}

	return nil
}

func copyTree(from, to string) error {
	return filepath.WalkDir(from, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(from, path)
		if err != nil {
			return err
		}
		target := filepath.Join(to, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}

		buf, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, buf, info.Mode().Perm())
	})
}
