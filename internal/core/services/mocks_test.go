package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/repolens/internal/core/domain"
)

// mockGateway implements driven.RepoGateway for testing. Each field
// configures the canned response or error for one capability. The
// mutex guards recorded calls, since search fans out concurrently.
type mockGateway struct {
	mu sync.Mutex

	issueHits  []domain.IssueHit
	pullHits   []domain.IssueHit
	commitHits []domain.CommitHit
	codeHits   []domain.CodeHit

	issueErr  error
	pullErr   error
	commitErr error
	codeErr   error

	issue  *domain.IssueDetail
	pull   *domain.PullDetail
	commit *domain.CommitDetail

	getIssueErr  error
	getPullErr   error
	getCommitErr error

	branchHead    string
	branchHeadErr error
	branchCommits []domain.CommitHit
	listErr       error
	treeEntries   []domain.TreeEntry
	treeErr       error

	blob    domain.RawContent
	blobErr error

	content    domain.RawContent
	contentErr error

	// recorded calls
	searchQueries []string
	blobSHAs      []string
	contentPaths  []string
	contentRefs   []string
	listWindow    int
}

func (m *mockGateway) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchQueries = append(m.searchQueries, call)
}

func (m *mockGateway) SearchIssues(_ context.Context, _ domain.RepoScope, qualifier, query string, _ int) ([]domain.IssueHit, error) {
	m.record(qualifier + " " + query)
	if qualifier == "is:pr" {
		return m.pullHits, m.pullErr
	}
	return m.issueHits, m.issueErr
}

func (m *mockGateway) SearchCommits(_ context.Context, _ domain.RepoScope, query string, _ int) ([]domain.CommitHit, error) {
	m.record("commits " + query)
	return m.commitHits, m.commitErr
}

func (m *mockGateway) SearchCode(_ context.Context, _ domain.RepoScope, query string, _ int) ([]domain.CodeHit, error) {
	m.record("code " + query)
	return m.codeHits, m.codeErr
}

func (m *mockGateway) GetIssue(_ context.Context, _ domain.RepoScope, _ int) (*domain.IssueDetail, error) {
	return m.issue, m.getIssueErr
}

func (m *mockGateway) GetPullRequest(_ context.Context, _ domain.RepoScope, _ int) (*domain.PullDetail, error) {
	return m.pull, m.getPullErr
}

func (m *mockGateway) GetCommit(_ context.Context, _ domain.RepoScope, _ string) (*domain.CommitDetail, error) {
	return m.commit, m.getCommitErr
}

func (m *mockGateway) GetBranchHead(_ context.Context, _ domain.RepoScope, _ string) (string, error) {
	return m.branchHead, m.branchHeadErr
}

func (m *mockGateway) ListCommitsOnBranch(_ context.Context, _ domain.RepoScope, _ string, window int) ([]domain.CommitHit, error) {
	m.listWindow = window
	return m.branchCommits, m.listErr
}

func (m *mockGateway) GetTreeRecursive(_ context.Context, _ domain.RepoScope, _ string) ([]domain.TreeEntry, error) {
	return m.treeEntries, m.treeErr
}

func (m *mockGateway) GetBlob(_ context.Context, _ domain.RepoScope, sha string) (domain.RawContent, error) {
	m.mu.Lock()
	m.blobSHAs = append(m.blobSHAs, sha)
	m.mu.Unlock()
	return m.blob, m.blobErr
}

func (m *mockGateway) GetContentByPath(_ context.Context, _ domain.RepoScope, path, ref string) (domain.RawContent, error) {
	m.mu.Lock()
	m.contentPaths = append(m.contentPaths, path)
	m.contentRefs = append(m.contentRefs, ref)
	m.mu.Unlock()
	return m.content, m.contentErr
}
