// Package source resolves a template reference to a local directory
// before the engine runs: an existing local path is used directly,
// anything else is treated as a git remote and cloned shallowly.
package source

import (
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/logging"
)

// Resolve turns a template reference into a local source root. The
// optional directory selects a sub-path inside it, for repositories
// carrying the template next to their own docs and CI. The returned
// cleanup removes any temporary clone and is safe to call always.
func Resolve(input, directory string) (root string, cleanup func(), err error) {
	logger := logging.GetLogger("source")
	cleanup = func() {}

	if info, serr := os.Stat(input); serr == nil && info.IsDir() {
		logger.Debug().Str("path", input).Msg("Using local template")
		root = input
	} else {
		tmp, merr := os.MkdirTemp("", "kickstart-clone-")
		if merr != nil {
			return "", cleanup, errors.Wrap(merr, errors.ErrDirCreate, "creating a directory for the clone")
		}
		cleanup = func() {
			_ = os.RemoveAll(tmp)
		}

		logger.Info().Str("remote", input).Msg("Cloning the repository")
		if _, cerr := git.PlainClone(tmp, false, &git.CloneOptions{
			URL:   input,
			Depth: 1,
		}); cerr != nil {
			return "", cleanup, errors.Wrapf(cerr, errors.ErrCloneFailed, "cloning %s", input)
		}
		root = tmp
	}

	if directory != "" {
		root = filepath.Join(root, directory)
	}

	if info, serr := os.Stat(root); serr != nil || !info.IsDir() {
		return "", cleanup, errors.Newf(errors.ErrSourceNotFound, "%s is not a directory", root)
	}

	return root, cleanup, nil
}
