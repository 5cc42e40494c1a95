// file: internal/scaffold/example.go

package scaffold

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"

	"create-next-app/config"
	"create-next-app/internal/logger"
)

// RepoInfo locates an example inside a git repository.
type RepoInfo struct {
	URL string
	// Branch is empty for the remote's default branch.
	Branch   string
	FilePath string
}

// IsURL reports whether the example argument is a URL rather than a name.
func IsURL(example string) bool {
	return strings.HasPrefix(example, "https://") || strings.HasPrefix(example, "http://")
}

// ResolveExample turns an example name or GitHub URL into a repository location.
func ResolveExample(example, examplePath string, cfg config.ExamplesConfig) (RepoInfo, error) {
	if IsURL(example) {
		return ParseGitHubURL(example, examplePath)
	}

	name := strings.Trim(example, "/")
	if name == "" || strings.Contains(name, "..") {
		return RepoInfo{}, fmt.Errorf("%w: %q", ErrExampleNotFound, example)
	}
	return RepoInfo{
		URL:      cfg.Repository,
		Branch:   cfg.Branch,
		FilePath: path.Join(cfg.Dir, name),
	}, nil
}

// ParseGitHubURL accepts https://github.com/<owner>/<repo>[/tree/<branch>[/<path>]].
// examplePath, when set, is the path inside the repository, which lets the
// branch itself contain slashes.
func ParseGitHubURL(raw, examplePath string) (RepoInfo, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return RepoInfo{}, fmt.Errorf("%w: %s: %v", ErrInvalidExampleURL, raw, err)
	}
	if u.Host != "github.com" {
		return RepoInfo{}, fmt.Errorf("%w: %s: only GitHub repositories are supported", ErrInvalidExampleURL, raw)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 || segs[0] == "" || segs[1] == "" {
		return RepoInfo{}, fmt.Errorf("%w: %s: missing owner or repository", ErrInvalidExampleURL, raw)
	}

	info := RepoInfo{
		URL: fmt.Sprintf("https://github.com/%s/%s.git", segs[0], strings.TrimSuffix(segs[1], ".git")),
	}
	filePath := strings.TrimPrefix(examplePath, "/")

	if len(segs) == 2 {
		info.FilePath = filePath
		return info, nil
	}
	if segs[2] != "tree" || len(segs) < 4 {
		return RepoInfo{}, fmt.Errorf("%w: %s: expected /tree/<branch>", ErrInvalidExampleURL, raw)
	}

	if filePath == "" {
		info.Branch = segs[3]
		info.FilePath = strings.Join(segs[4:], "/")
		return info, nil
	}

	info.Branch = strings.TrimSuffix(strings.Join(segs[3:], "/"), "/"+filePath)
	info.FilePath = filePath
	return info, nil
}

// Fetcher copies an example into a local directory.
type Fetcher interface {
	Fetch(ctx context.Context, repo RepoInfo, dest string) error
}

// GitFetcher clones examples with go-git into memory and copies the example directory out.
type GitFetcher struct {
	timeout time.Duration
	logger  *logger.Logger
}

// NewGitFetcher creates a fetcher whose clones are bounded by timeout.
func NewGitFetcher(timeout time.Duration, log *logger.Logger) *GitFetcher {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &GitFetcher{timeout: timeout, logger: log}
}

// Fetch clones repo and copies repo.FilePath into dest. Transfer failures
// are returned as *DownloadError.
func (f *GitFetcher) Fetch(ctx context.Context, repo RepoInfo, dest string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	opts := &git.CloneOptions{
		URL:          repo.URL,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if repo.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(repo.Branch)
	}

	f.logger.Info("cloning example", "url", repo.URL, "branch", repo.Branch, "path", repo.FilePath)
	start := time.Now()

	worktree := memfs.New()
	if _, err := git.CloneContext(ctx, memory.NewStorage(), worktree, opts); err != nil {
		return classifyCloneError(repo, err)
	}
	f.logger.Debug("example cloned", "url", repo.URL, "duration", time.Since(start))

	var src billy.Filesystem = worktree
	if repo.FilePath != "" {
		info, err := worktree.Stat(repo.FilePath)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrExampleNotFound, repo.FilePath)
		}
		src, err = worktree.Chroot(repo.FilePath)
		if err != nil {
			return fmt.Errorf("failed to open example directory %s: %w", repo.FilePath, err)
		}
	}

	return CopyTree(src, osfs.New(dest))
}

func classifyCloneError(repo RepoInfo, err error) error {
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed):
		return fmt.Errorf("could not locate the repository %s: %w", repo.URL, err)
	case errors.Is(err, git.NoMatchingRefSpecError{}),
		errors.Is(err, plumbing.ErrReferenceNotFound):
		return fmt.Errorf("could not locate branch %q in %s: %w", repo.Branch, repo.URL, err)
	}
	return &DownloadError{Source: repo.URL, Err: err}
}

// CopyTree copies every regular file of src into dst, keeping file modes.
// Symbolic links are skipped.
func CopyTree(src, dst billy.Filesystem) error {
	return util.Walk(src, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == "/" {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		if info.IsDir() {
			return dst.MkdirAll(p, 0o755)
		}

		data, err := util.ReadFile(src, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		perm := info.Mode().Perm()
		if perm == 0 {
			perm = 0o644
		}
		if err := util.WriteFile(dst, p, data, perm); err != nil {
			return fmt.Errorf("failed to write %s: %w", p, err)
		}
		return nil
	})
}
