package mcp

import (
	"context"

	"github.com/custodia-labs/repolens/internal/core/domain"
)

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results []domain.ResultRecord
	err     error

	gotQuery  string
	gotBranch string
}

func (m *mockSearchService) Search(_ context.Context, query, branch string) ([]domain.ResultRecord, error) {
	m.gotQuery = query
	m.gotBranch = branch
	return m.results, m.err
}

// mockFetchService implements driving.FetchService for testing.
type mockFetchService struct {
	docs []domain.Doc
	err  error

	gotIDs  []string
	gotPath string
	gotRef  string
}

func (m *mockFetchService) Fetch(_ context.Context, ids []string, path, ref string) ([]domain.Doc, error) {
	m.gotIDs = ids
	m.gotPath = path
	m.gotRef = ref
	return m.docs, m.err
}
