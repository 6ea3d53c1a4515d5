package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

const (
	defaultAuthorName  = "componentupdate"
	defaultAuthorEmail = "componentupdate@localhost"
)

// VCSRepository works on the local Git working tree containing a directory.
type VCSRepository struct {
	nowFunc func() time.Time
}

// NewVCSRepository creates a go-git backed VCS repository.
func NewVCSRepository() repositories.VCSRepository {
	return &VCSRepository{nowFunc: time.Now}
}

type worktree struct {
	repo *gogit.Repository
	tree *gogit.Worktree
	root string
	dir  string
}

func (r *VCSRepository) open(dir string) (*worktree, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	repo, err := gogit.PlainOpenWithOptions(absDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not inside a git repository: %w", entities.ErrExternalProcess, dir, err)
	}
	tree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open worktree: %w", entities.ErrExternalProcess, err)
	}
	root, err := filepath.EvalSymlinks(tree.Filesystem.Root())
	if err != nil {
		root = tree.Filesystem.Root()
	}
	if resolved, evalErr := filepath.EvalSymlinks(absDir); evalErr == nil {
		absDir = resolved
	}
	return &worktree{repo: repo, tree: tree, root: root, dir: absDir}, nil
}

// DiffNames lists the tracked files below dir whose working copy differs
// from the index or from HEAD. Untracked files are not reported.
func (r *VCSRepository) DiffNames(_ context.Context, dir string) (map[string]bool, error) {
	wt, err := r.open(dir)
	if err != nil {
		return nil, err
	}
	status, err := wt.tree.Status()
	if err != nil {
		return nil, fmt.Errorf("%w: git status failed: %w", entities.ErrExternalProcess, err)
	}

	changed := make(map[string]bool)
	for path, fileStatus := range status {
		if fileStatus.Worktree == gogit.Untracked {
			continue
		}
		if fileStatus.Worktree == gogit.Unmodified && fileStatus.Staging == gogit.Unmodified {
			continue
		}
		relative, ok := wt.relativeToDir(path)
		if !ok {
			continue
		}
		changed[relative] = true
	}
	logger.Debugf("[git] %d changed files below %s", len(changed), dir)
	return changed, nil
}

// Add stages path, given relative to dir.
func (r *VCSRepository) Add(_ context.Context, dir, path string) error {
	wt, err := r.open(dir)
	if err != nil {
		return err
	}
	repoPath, err := wt.relativeToRoot(path)
	if err != nil {
		return err
	}
	if _, addErr := wt.tree.Add(repoPath); addErr != nil {
		return fmt.Errorf("%w: git add %s failed: %w", entities.ErrExternalProcess, repoPath, addErr)
	}
	logger.Debugf("[git] staged %s", repoPath)
	return nil
}

// Commit records the staged changes. The author comes from the Git
// configuration, falling back to a fixed identity.
func (r *VCSRepository) Commit(_ context.Context, dir, message string) error {
	wt, err := r.open(dir)
	if err != nil {
		return err
	}
	hash, err := wt.tree.Commit(message, &gogit.CommitOptions{Author: r.author(wt.repo)})
	if err != nil {
		return fmt.Errorf("%w: git commit failed: %w", entities.ErrExternalProcess, err)
	}
	logger.Infof("[git] committed %s: %s", hash.String()[:7], message)
	return nil
}

func (r *VCSRepository) author(repo *gogit.Repository) *object.Signature {
	signature := &object.Signature{Name: defaultAuthorName, Email: defaultAuthorEmail, When: r.nowFunc()}
	for _, scope := range []config.Scope{config.LocalScope, config.GlobalScope} {
		cfg, err := repo.ConfigScoped(scope)
		if err != nil || cfg.User.Name == "" {
			continue
		}
		signature.Name = cfg.User.Name
		if cfg.User.Email != "" {
			signature.Email = cfg.User.Email
		}
		break
	}
	return signature
}

// relativeToDir converts a repository path to one relative to wt.dir. It
// reports false for paths outside of wt.dir.
func (wt *worktree) relativeToDir(repoPath string) (string, bool) {
	relative, err := filepath.Rel(wt.dir, filepath.Join(wt.root, filepath.FromSlash(repoPath)))
	if err != nil || strings.HasPrefix(relative, "..") {
		return "", false
	}
	return filepath.ToSlash(relative), true
}

func (wt *worktree) relativeToRoot(path string) (string, error) {
	relative, err := filepath.Rel(wt.root, filepath.Join(wt.dir, filepath.FromSlash(path)))
	if err != nil || strings.HasPrefix(relative, "..") {
		return "", fmt.Errorf("%w: %s is outside of the repository %s", entities.ErrConfiguration, path, wt.root)
	}
	return filepath.ToSlash(relative), nil
}
