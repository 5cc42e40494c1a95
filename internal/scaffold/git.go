// file: internal/scaffold/git.go

package scaffold

import (
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"create-next-app/internal/logger"
)

const initialCommitMessage = "Initial commit from Create Next App"

// InitRepository creates a git repository in root with one commit holding
// every file. It does nothing when root already sits inside a repository.
// Failures are logged and reported as false; a partial .git is removed.
func InitRepository(root string, log *logger.Logger) bool {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if _, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		log.Debug("already inside a git repository, skipping init", "path", root)
		return false
	}

	repo, err := git.PlainInitWithOptions(root, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Main},
	})
	if err != nil {
		log.Warn("git init failed", "path", root, "error", err)
		return false
	}

	if err := commitAll(repo); err != nil {
		log.Warn("initial commit failed", "path", root, "error", err)
		if rmErr := os.RemoveAll(filepath.Join(root, git.GitDirName)); rmErr != nil {
			log.Debug("failed to remove partial repository", "error", rmErr)
		}
		return false
	}

	log.Info("initialized git repository", "path", root)
	return true
}

func commitAll(repo *git.Repository) error {
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return err
	}
	_, err = wt.Commit(initialCommitMessage, &git.CommitOptions{
		Author:            commitAuthor(),
		AllowEmptyCommits: true,
	})
	return err
}

// commitAuthor reads user.name and user.email from the global git config.
func commitAuthor() *object.Signature {
	sig := &object.Signature{
		Name:  "create-next-app",
		Email: "create-next-app@users.noreply.github.com",
		When:  time.Now(),
	}
	cfg, err := gitconfig.LoadConfig(gitconfig.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
