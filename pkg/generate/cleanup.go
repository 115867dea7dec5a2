package generate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/logging"
	"github.com/Keats/kickstart/pkg/schema"
)

// cleanup evaluates each cleanup rule against the final context and
// deletes the matched rendered paths. Deletion is best-effort per
// path: a missing path is a no-op and failures are collected in the
// report without failing the run, since generation already succeeded.
func (g *Generator) cleanup(ctx *schema.Context, dest string, report *Report) {
	logger := logging.GetLogger("cleanup")

	for _, rule := range g.def.Cleanup {
		current, ok := ctx.Get(rule.Name)
		if !ok || !current.Equal(rule.Value) {
			continue
		}

		for _, p := range rule.Paths {
			rendered, err := g.engine.Render("cleanup path `"+p+"`", p, ctx)
			if err != nil {
				logger.Warn().Err(err).Str("path", p).Msg("Cleanup path failed to render")
				report.CleanupErrors = append(report.CleanupErrors, err)
				continue
			}

			target := filepath.Join(dest, filepath.FromSlash(rendered))

			// A rendered path escaping the destination is never deleted
			rel, err := filepath.Rel(dest, target)
			if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				logger.Warn().Str("path", rendered).Msg("Cleanup path escapes the destination, skipping")
				continue
			}

			if _, err := os.Lstat(target); os.IsNotExist(err) {
				continue
			}

			if err := os.RemoveAll(target); err != nil {
				kerr := errors.Wrapf(err, errors.ErrCleanupFailed, "deleting %s", rendered)
				logger.Warn().Err(kerr).Msg("Cleanup deletion failed")
				report.CleanupErrors = append(report.CleanupErrors, kerr)
				continue
			}

			logger.Debug().Str("path", rendered).Str("rule", rule.Name).Msg("Cleaned up")
			report.Deleted = append(report.Deleted, rendered)
		}
	}
}
