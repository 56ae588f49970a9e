// Package gitinfo reads the commit a site root is checked out at, used to stamp emitted
// configuration with the source revision.
package gitinfo

import (
	"errors"
	"time"

	"github.com/go-git/go-git/v5"

	ferrors "github.com/lianghchao/docsite/internal/foundation/errors"
)

// Info describes HEAD of the repository containing a site root.
type Info struct {
	Hash        string
	Branch      string // Empty on a detached HEAD
	CommittedAt time.Time
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.Hash) > 12 {
		return i.Hash[:12]
	}
	return i.Hash
}

// Head opens the repository containing root, searching parent directories for .git.
func Head(root string) (Info, error) {
	repository, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Info{}, ferrors.WrapError(err, ferrors.CategoryGit, "failed to open repository").
			WithContext("root", root).
			Build()
	}

	ref, err := repository.Head()
	if err != nil {
		return Info{}, ferrors.WrapError(err, ferrors.CategoryGit, "failed to resolve HEAD").
			WithContext("root", root).
			Build()
	}

	info := Info{Hash: ref.Hash().String()}
	if ref.Name().IsBranch() {
		info.Branch = ref.Name().Short()
	}

	commit, err := repository.CommitObject(ref.Hash())
	if err != nil {
		return Info{}, ferrors.WrapError(err, ferrors.CategoryGit, "failed to read HEAD commit").
			WithContext("root", root).
			WithContext("commit", info.Hash).
			Build()
	}
	info.CommittedAt = commit.Committer.When.UTC()
	return info, nil
}

// IsNotRepository reports whether err means root is not inside a git repository.
func IsNotRepository(err error) bool {
	return errors.Is(err, git.ErrRepositoryNotExists)
}
