package detect

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// GitHead describes the checked-out reference of a git repository.
type GitHead struct {
	Root   string
	Branch string
	Hash   string
}

func (h GitHead) String() string {
	return fmt.Sprintf("%s %s (%s)", h.Branch, h.Hash, h.Root)
}

// Head opens the git repository enclosing dir and reports its HEAD. It fails
// when dir is not inside a repository or the repository has no commits yet.
func Head(dir string) (GitHead, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return GitHead{}, fmt.Errorf("open repository: %w", err)
	}
	ref, err := repo.Head()
	if err != nil {
		return GitHead{}, fmt.Errorf("read HEAD: %w", err)
	}
	h := GitHead{
		Branch: ref.Name().Short(),
		Hash:   ref.Hash().String(),
	}
	if len(h.Hash) > 7 {
		h.Hash = h.Hash[:7]
	}
	if wt, err := repo.Worktree(); err == nil {
		h.Root = wt.Filesystem.Root()
	}
	return h, nil
}
