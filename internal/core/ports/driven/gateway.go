package driven

import (
	"context"

	"github.com/custodia-labs/repolens/internal/core/domain"
)

// RepoGateway is the capability set repolens consumes from the
// repository-hosting API. Implementations wrap the provider's REST
// endpoints, carry authentication, and surface non-success responses
// as typed errors with the status code and a bounded body excerpt.
type RepoGateway interface {
	// SearchIssues searches issues or pull requests within the scope.
	// qualifier narrows the search ("is:issue" or "is:pr").
	SearchIssues(ctx context.Context, scope domain.RepoScope, qualifier, query string, limit int) ([]domain.IssueHit, error)

	// SearchCommits searches commits on the default branch.
	SearchCommits(ctx context.Context, scope domain.RepoScope, query string, limit int) ([]domain.CommitHit, error)

	// SearchCode searches file content on the default branch. Hits
	// carry the blob content hash, path, canonical URL and an optional
	// matched-text fragment.
	SearchCode(ctx context.Context, scope domain.RepoScope, query string, limit int) ([]domain.CodeHit, error)

	// GetIssue fetches a single issue by number.
	GetIssue(ctx context.Context, scope domain.RepoScope, number int) (*domain.IssueDetail, error)

	// GetPullRequest fetches a single pull request by number.
	GetPullRequest(ctx context.Context, scope domain.RepoScope, number int) (*domain.PullDetail, error)

	// GetCommit fetches a single commit by hash.
	GetCommit(ctx context.Context, scope domain.RepoScope, sha string) (*domain.CommitDetail, error)

	// GetBranchHead resolves a branch name to its head commit hash.
	GetBranchHead(ctx context.Context, scope domain.RepoScope, branch string) (string, error)

	// ListCommitsOnBranch returns up to window commits reachable from
	// the branch head, most recent first.
	ListCommitsOnBranch(ctx context.Context, scope domain.RepoScope, branch string, window int) ([]domain.CommitHit, error)

	// GetTreeRecursive fetches the full recursive tree at a commit.
	GetTreeRecursive(ctx context.Context, scope domain.RepoScope, sha string) ([]domain.TreeEntry, error)

	// GetBlob fetches raw blob content by hash, undecoded.
	GetBlob(ctx context.Context, scope domain.RepoScope, sha string) (domain.RawContent, error)

	// GetContentByPath fetches file content at a path and ref,
	// undecoded. An empty ref means the repository's current head.
	GetContentByPath(ctx context.Context, scope domain.RepoScope, path, ref string) (domain.RawContent, error)
}
