package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/repolens/internal/core/domain"
	"github.com/custodia-labs/repolens/internal/core/ports/driven"
)

// Ensure Gateway implements the port.
var _ driven.RepoGateway = (*Gateway)(nil)

// branchMaxRedirects follows renamed-branch redirects on GetBranch.
const branchMaxRedirects = 3

// SearchIssues searches issues or pull requests scoped to the
// repository, narrowed by qualifier ("is:issue" or "is:pr").
func (g *Gateway) SearchIssues(
	ctx context.Context, scope domain.RepoScope, qualifier, query string, limit int,
) ([]domain.IssueHit, error) {
	if err := g.prepare(ctx); err != nil {
		return nil, err
	}

	q := scopedQuery(scope, qualifier, query)
	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: limit}}

	result, resp, err := g.gh.Search.Issues(ctx, q, opts)
	if err != nil {
		return nil, g.wrapError(err, "search issues")
	}
	g.updateRateLimitFromResponse(resp)

	hits := make([]domain.IssueHit, 0, len(result.Issues))
	for _, issue := range result.Issues {
		hits = append(hits, domain.IssueHit{
			Number: issue.GetNumber(),
			Title:  issue.GetTitle(),
			URL:    issue.GetHTMLURL(),
		})
	}
	return hits, nil
}

// SearchCommits searches commits on the default branch.
func (g *Gateway) SearchCommits(
	ctx context.Context, scope domain.RepoScope, query string, limit int,
) ([]domain.CommitHit, error) {
	if err := g.prepare(ctx); err != nil {
		return nil, err
	}

	q := scopedQuery(scope, "", query)
	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: limit}}

	result, resp, err := g.gh.Search.Commits(ctx, q, opts)
	if err != nil {
		return nil, g.wrapError(err, "search commits")
	}
	g.updateRateLimitFromResponse(resp)

	hits := make([]domain.CommitHit, 0, len(result.Commits))
	for _, commit := range result.Commits {
		hits = append(hits, domain.CommitHit{
			SHA:     commit.GetSHA(),
			Message: commit.GetCommit().GetMessage(),
			URL:     commit.GetHTMLURL(),
		})
	}
	return hits, nil
}

// SearchCode searches file content on the default branch. Text match
// fragments are requested so results carry a snippet.
func (g *Gateway) SearchCode(
	ctx context.Context, scope domain.RepoScope, query string, limit int,
) ([]domain.CodeHit, error) {
	if err := g.prepare(ctx); err != nil {
		return nil, err
	}

	q := scopedQuery(scope, "", query)
	opts := &gh.SearchOptions{
		TextMatch:   true,
		ListOptions: gh.ListOptions{PerPage: limit},
	}

	result, resp, err := g.gh.Search.Code(ctx, q, opts)
	if err != nil {
		return nil, g.wrapError(err, "search code")
	}
	g.updateRateLimitFromResponse(resp)

	hits := make([]domain.CodeHit, 0, len(result.CodeResults))
	for _, code := range result.CodeResults {
		fragment := ""
		if len(code.TextMatches) > 0 {
			fragment = code.TextMatches[0].GetFragment()
		}
		hits = append(hits, domain.CodeHit{
			SHA:      code.GetSHA(),
			Path:     code.GetPath(),
			URL:      code.GetHTMLURL(),
			Fragment: fragment,
		})
	}
	return hits, nil
}

// GetIssue fetches a single issue by number.
func (g *Gateway) GetIssue(
	ctx context.Context, scope domain.RepoScope, number int,
) (*domain.IssueDetail, error) {
	if err := g.prepare(ctx); err != nil {
		return nil, err
	}

	issue, resp, err := g.gh.Issues.Get(ctx, scope.Owner, scope.Name, number)
	if err != nil {
		return nil, g.wrapError(err, "get issue")
	}
	g.updateRateLimitFromResponse(resp)

	labels := make([]string, len(issue.Labels))
	for i, l := range issue.Labels {
		labels[i] = l.GetName()
	}

	return &domain.IssueDetail{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		State:  issue.GetState(),
		Labels: labels,
		URL:    issue.GetHTMLURL(),
	}, nil
}

// GetPullRequest fetches a single pull request by number.
func (g *Gateway) GetPullRequest(
	ctx context.Context, scope domain.RepoScope, number int,
) (*domain.PullDetail, error) {
	if err := g.prepare(ctx); err != nil {
		return nil, err
	}

	pull, resp, err := g.gh.PullRequests.Get(ctx, scope.Owner, scope.Name, number)
	if err != nil {
		return nil, g.wrapError(err, "get pull request")
	}
	g.updateRateLimitFromResponse(resp)

	return &domain.PullDetail{
		Number:  pull.GetNumber(),
		Title:   pull.GetTitle(),
		Body:    pull.GetBody(),
		State:   pull.GetState(),
		Merged:  pull.GetMerged(),
		HeadRef: pull.GetHead().GetRef(),
		BaseRef: pull.GetBase().GetRef(),
		URL:     pull.GetHTMLURL(),
	}, nil
}

// GetCommit fetches a single commit by hash.
func (g *Gateway) GetCommit(
	ctx context.Context, scope domain.RepoScope, sha string,
) (*domain.CommitDetail, error) {
	if err := g.prepare(ctx); err != nil {
		return nil, err
	}

	commit, resp, err := g.gh.Repositories.GetCommit(ctx, scope.Owner, scope.Name, sha, nil)
	if err != nil {
		return nil, g.wrapError(err, "get commit")
	}
	g.updateRateLimitFromResponse(resp)

	return &domain.CommitDetail{
		SHA:       commit.GetSHA(),
		Message:   commit.GetCommit().GetMessage(),
		Author:    signature(commit.GetCommit().GetAuthor()),
		Committer: signature(commit.GetCommit().GetCommitter()),
		URL:       commit.GetHTMLURL(),
	}, nil
}

// GetBranchHead resolves a branch name to its head commit hash.
func (g *Gateway) GetBranchHead(
	ctx context.Context, scope domain.RepoScope, branch string,
) (string, error) {
	if err := g.prepare(ctx); err != nil {
		return "", err
	}

	b, resp, err := g.gh.Repositories.GetBranch(ctx, scope.Owner, scope.Name, branch, branchMaxRedirects)
	if err != nil {
		return "", g.wrapError(err, "get branch")
	}
	g.updateRateLimitFromResponse(resp)

	return b.GetCommit().GetSHA(), nil
}

// ListCommitsOnBranch returns up to window commits reachable from the
// branch head, most recent first.
func (g *Gateway) ListCommitsOnBranch(
	ctx context.Context, scope domain.RepoScope, branch string, window int,
) ([]domain.CommitHit, error) {
	if err := g.prepare(ctx); err != nil {
		return nil, err
	}

	opts := &gh.CommitsListOptions{
		SHA:         branch,
		ListOptions: gh.ListOptions{PerPage: window},
	}

	commits, resp, err := g.gh.Repositories.ListCommits(ctx, scope.Owner, scope.Name, opts)
	if err != nil {
		return nil, g.wrapError(err, "list commits")
	}
	g.updateRateLimitFromResponse(resp)

	hits := make([]domain.CommitHit, 0, len(commits))
	for _, commit := range commits {
		hits = append(hits, domain.CommitHit{
			SHA:     commit.GetSHA(),
			Message: commit.GetCommit().GetMessage(),
			URL:     commit.GetHTMLURL(),
		})
	}
	return hits, nil
}

// GetTreeRecursive fetches the full recursive tree at a commit.
func (g *Gateway) GetTreeRecursive(
	ctx context.Context, scope domain.RepoScope, sha string,
) ([]domain.TreeEntry, error) {
	if err := g.prepare(ctx); err != nil {
		return nil, err
	}

	tree, resp, err := g.gh.Git.GetTree(ctx, scope.Owner, scope.Name, sha, true)
	if err != nil {
		return nil, g.wrapError(err, "get tree")
	}
	g.updateRateLimitFromResponse(resp)

	entries := make([]domain.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		entries = append(entries, domain.TreeEntry{
			Type: entry.GetType(),
			Path: entry.GetPath(),
			SHA:  entry.GetSHA(),
			Size: entry.GetSize(),
		})
	}
	return entries, nil
}

// GetBlob fetches raw blob content by hash, undecoded.
func (g *Gateway) GetBlob(
	ctx context.Context, scope domain.RepoScope, sha string,
) (domain.RawContent, error) {
	if err := g.prepare(ctx); err != nil {
		return domain.RawContent{}, err
	}

	blob, resp, err := g.gh.Git.GetBlob(ctx, scope.Owner, scope.Name, sha)
	if err != nil {
		return domain.RawContent{}, g.wrapError(err, "get blob")
	}
	g.updateRateLimitFromResponse(resp)

	return domain.RawContent{
		Content:  blob.GetContent(),
		Encoding: blob.GetEncoding(),
		Size:     blob.GetSize(),
	}, nil
}

// GetContentByPath fetches file content at a path and ref, undecoded.
func (g *Gateway) GetContentByPath(
	ctx context.Context, scope domain.RepoScope, path, ref string,
) (domain.RawContent, error) {
	if err := g.prepare(ctx); err != nil {
		return domain.RawContent{}, err
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, resp, err := g.gh.Repositories.GetContents(ctx, scope.Owner, scope.Name, path, opts)
	if err != nil {
		return domain.RawContent{}, g.wrapError(err, "get contents")
	}
	g.updateRateLimitFromResponse(resp)

	if content == nil {
		return domain.RawContent{}, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	raw := ""
	if content.Content != nil {
		raw = *content.Content
	}
	return domain.RawContent{
		Content:  raw,
		Encoding: content.GetEncoding(),
		Size:     content.GetSize(),
	}, nil
}

// scopedQuery builds an upstream search query bound to the repository,
// with an optional category qualifier and the caller's free text.
func scopedQuery(scope domain.RepoScope, qualifier, freeText string) string {
	parts := []string{"repo:" + scope.String()}
	if qualifier != "" {
		parts = append(parts, qualifier)
	}
	if trimmed := strings.TrimSpace(freeText); trimmed != "" {
		parts = append(parts, trimmed)
	}
	return strings.Join(parts, " ")
}

// signature converts a go-github commit author to a domain signature.
func signature(author *gh.CommitAuthor) domain.Signature {
	return domain.Signature{
		Name:  author.GetName(),
		Email: author.GetEmail(),
		Date:  author.GetDate().Time,
	}
}
