package git

import (
	"context"
	stdErrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/logfields"
	"git.home.luguber.info/inful/docsbuild/internal/project"
	"git.home.luguber.info/inful/docsbuild/internal/retry"
)

const remoteName = "origin"

// Syncer keeps project checkouts below ProjectsDir.
type Syncer struct {
	ProjectsDir string
	// Progress receives clone and fetch progress output. Nil discards it.
	Progress io.Writer
	// Retry governs clone and fetch attempts that fail transiently.
	Retry retry.Policy
}

func NewSyncer(projectsDir string) *Syncer {
	return &Syncer{ProjectsDir: projectsDir, Retry: retry.DefaultPolicy()}
}

// Sync clones the project repository if needed, fetches the version's branch
// and force checks out its remote head. The working tree ends up detached at
// the returned commit.
func (s *Syncer) Sync(ctx context.Context, p project.Project, v project.Version) (string, error) {
	if p.RepositoryURL == "" {
		return "", errors.ValidationError("project has no repository url").
			WithContext("project", p.Slug).
			Build()
	}
	branch := v.Branch()

	start := time.Now()
	path := p.CheckoutDir(s.ProjectsDir)
	var repo *git.Repository
	err := retry.Do(ctx, s.Retry, "clone", func(ctx context.Context) error {
		var openErr error
		repo, openErr = s.open(ctx, path, p.RepositoryURL, branch)
		return openErr
	})
	if err != nil {
		return "", err
	}

	err = retry.Do(ctx, s.Retry, "fetch", func(ctx context.Context) error {
		return s.fetch(ctx, repo, p.RepositoryURL, branch)
	})
	if err != nil {
		return "", err
	}

	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(remoteName, branch), true)
	if err != nil {
		return "", classifyGitError(err, "resolve", p.RepositoryURL)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", classifyGitError(err, "worktree", p.RepositoryURL)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: ref.Hash(), Force: true}); err != nil {
		return "", classifyGitError(err, "checkout", p.RepositoryURL)
	}

	commit := ref.Hash().String()
	slog.Info("Synced project sources",
		logfields.Project(p.Slug),
		logfields.Version(v.Slug),
		slog.String("branch", branch),
		logfields.Commit(commit[:8]),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return commit, nil
}

func (s *Syncer) open(ctx context.Context, path, url, branch string) (*git.Repository, error) {
	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		repo, err := git.PlainOpen(path)
		if err != nil {
			return nil, classifyGitError(err, "open", url)
		}
		return repo, nil
	}

	slog.Debug("Cloning repository", logfields.URL(url), logfields.Path(path), slog.String("branch", branch))
	if err := os.RemoveAll(path); err != nil {
		return nil, errors.FileSystemError("cannot clear checkout directory").WithCause(err).WithContext("path", path).Build()
	}
	repo, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:           url,
		RemoteName:    remoteName,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Progress:      s.Progress,
	})
	if err != nil {
		_ = os.RemoveAll(path)
		return nil, classifyGitError(err, "clone", url)
	}
	return repo, nil
}

func (s *Syncer) fetch(ctx context.Context, repo *git.Repository, url, branch string) error {
	refspec := gitconfig.RefSpec("+" + plumbing.NewBranchReferenceName(branch).String() + ":" +
		plumbing.NewRemoteReferenceName(remoteName, branch).String())
	err := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteName,
		RefSpecs:   []gitconfig.RefSpec{refspec},
		Force:      true,
		Progress:   s.Progress,
	})
	if err != nil && !stdErrors.Is(err, git.NoErrAlreadyUpToDate) {
		return classifyGitError(err, "fetch", url)
	}
	return nil
}
