package git

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gitsight/go-vcsurl"
	"github.com/go-git/go-git/v5"
)

// RepositoryMetadata describes the checkout an analysis was run against.
type RepositoryMetadata struct {
	BranchName         *string
	CommitHash         *string
	RepositoryFullName *string
	Subfolder          string
	RepoRootFolder     string
}

// CollectRepositoryMetadata collects the branch name, commit hash, remote
// name, subfolder and repository root for sourceFolder.
func CollectRepositoryMetadata(sourceFolder string) (*RepositoryMetadata, error) {
	if sourceFolder == "" {
		return &RepositoryMetadata{}, fmt.Errorf("source folder is not set")
	}

	if absSource, err := filepath.Abs(sourceFolder); err == nil {
		sourceFolder = absSource
	}

	md := &RepositoryMetadata{
		RepoRootFolder: filepath.Clean(sourceFolder),
	}

	repoRootFolder, err := findGitRepositoryPath(sourceFolder)
	if err != nil {
		return md, err
	}

	md.RepoRootFolder = filepath.Clean(repoRootFolder)

	repo, err := git.PlainOpen(repoRootFolder)
	if err != nil {
		return md, fmt.Errorf("failed to open repository: %w", err)
	}

	if rel, err := filepath.Rel(repoRootFolder, sourceFolder); err == nil && rel != "." {
		md.Subfolder = filepath.ToSlash(rel)
	}

	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			branchName := head.Name().Short()
			md.BranchName = &branchName
		}

		hash := head.Hash().String()
		md.CommitHash = &hash
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			repositoryFullName := repositoryURL(cfg.URLs[0])
			md.RepositoryFullName = &repositoryFullName
		}
	}

	return md, nil
}

// repositoryURL turns an origin remote into a browsable https URL.
// Remotes of hosts go-vcsurl does not know are kept, minus credentials and the .git suffix.
func repositoryURL(remote string) string {
	if info, err := vcsurl.Parse(remote); err == nil && info.FullName != "" {
		return fmt.Sprintf("https://%s/%s", info.Host, info.FullName)
	}
	return strings.TrimSuffix(stripCredentials(remote), ".git")
}

// stripCredentials drops user info from http(s) remotes so tokens never reach a report.
func stripCredentials(remoteURL string) string {
	u, err := url.Parse(remoteURL)
	if err != nil || u.User == nil || (u.Scheme != "http" && u.Scheme != "https") {
		return remoteURL
	}
	u.User = nil
	return u.String()
}
