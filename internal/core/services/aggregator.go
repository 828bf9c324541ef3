package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/repolens/internal/core/domain"
	"github.com/custodia-labs/repolens/internal/core/ports/driven"
	"github.com/custodia-labs/repolens/internal/logger"
)

const (
	// DefaultLimit is the per-category result cap when none is configured.
	DefaultLimit = 10

	// DefaultCommitWindow is the maximum number of branch commits
	// scanned in explicit-branch mode.
	DefaultCommitWindow = 100
)

// Aggregator issues the per-category upstream queries for one search
// invocation, merges the results in the fixed category order and
// returns a flat list of uniform records. A failing category yields an
// empty list for that category; it never aborts the whole call.
type Aggregator struct {
	gateway      driven.RepoGateway
	scope        domain.RepoScope
	index        *Index
	limit        int
	commitWindow int
}

// NewAggregator creates a search aggregator bound to one repository
// scope and one session index.
func NewAggregator(gateway driven.RepoGateway, scope domain.RepoScope, index *Index, limit, commitWindow int) *Aggregator {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if commitWindow <= 0 {
		commitWindow = DefaultCommitWindow
	}
	return &Aggregator{
		gateway:      gateway,
		scope:        scope,
		index:        index,
		limit:        limit,
		commitWindow: commitWindow,
	}
}

// Search runs the four category queries concurrently and merges their
// results as issues, pull requests, commits, code. Completion order
// never affects output order; within a category the upstream order is
// preserved. It returns an error only when the context is cancelled.
func (a *Aggregator) Search(ctx context.Context, query, branch string) ([]domain.ResultRecord, error) {
	var issues, pulls, commits, code []domain.ResultRecord

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		issues = a.searchIssues(gctx, "is:issue", query)
		return gctx.Err()
	})
	g.Go(func() error {
		pulls = a.searchPulls(gctx, query)
		return gctx.Err()
	})
	g.Go(func() error {
		commits = a.searchCommits(gctx, query, branch)
		return gctx.Err()
	})
	g.Go(func() error {
		code = a.searchCode(gctx, query, branch)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]domain.ResultRecord, 0, len(issues)+len(pulls)+len(commits)+len(code))
	merged = append(merged, issues...)
	merged = append(merged, pulls...)
	merged = append(merged, commits...)
	merged = append(merged, code...)
	return merged, nil
}

// searchIssues queries the upstream issue search with a category
// qualifier. Issues are not branch-scoped upstream, so both modes use
// the same query.
func (a *Aggregator) searchIssues(ctx context.Context, qualifier, query string) []domain.ResultRecord {
	hits, err := a.gateway.SearchIssues(ctx, a.scope, qualifier, query, a.limit)
	if err != nil {
		logger.Warn("search %s failed for %s: %v", qualifier, a.scope, err)
		return []domain.ResultRecord{}
	}

	records := make([]domain.ResultRecord, 0, len(hits))
	for _, hit := range hits {
		if rec, ok := mapIssueHit(hit); ok {
			records = append(records, rec)
		}
	}
	return records
}

func (a *Aggregator) searchPulls(ctx context.Context, query string) []domain.ResultRecord {
	hits, err := a.gateway.SearchIssues(ctx, a.scope, "is:pr", query, a.limit)
	if err != nil {
		logger.Warn("search is:pr failed for %s: %v", a.scope, err)
		return []domain.ResultRecord{}
	}

	records := make([]domain.ResultRecord, 0, len(hits))
	for _, hit := range hits {
		if rec, ok := mapPullHit(hit); ok {
			records = append(records, rec)
		}
	}
	return records
}

// searchCommits delegates to the upstream commit search in default
// mode. The upstream search cannot be scoped to an arbitrary branch
// head, so explicit-branch mode scans the branch's recent commits and
// filters locally.
func (a *Aggregator) searchCommits(ctx context.Context, query, branch string) []domain.ResultRecord {
	var (
		hits []domain.CommitHit
		err  error
	)
	if branch == "" {
		hits, err = a.gateway.SearchCommits(ctx, a.scope, query, a.limit)
	} else {
		hits, err = a.scanBranchCommits(ctx, query, branch)
	}
	if err != nil {
		logger.Warn("commit search failed for %s: %v", a.scope, err)
		return []domain.ResultRecord{}
	}

	records := make([]domain.ResultRecord, 0, len(hits))
	for _, hit := range hits {
		if rec, ok := mapCommitHit(hit); ok {
			records = append(records, rec)
		}
	}
	return records
}

// scanBranchCommits fetches a window of recent commits on the branch
// and keeps those whose message headline or full hash contains the
// query, case-insensitively. An empty query matches everything.
func (a *Aggregator) scanBranchCommits(ctx context.Context, query, branch string) ([]domain.CommitHit, error) {
	window, err := a.gateway.ListCommitsOnBranch(ctx, a.scope, branch, a.commitWindow)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]domain.CommitHit, 0, a.limit)
	for _, hit := range window {
		if needle != "" &&
			!strings.Contains(strings.ToLower(firstLine(hit.Message)), needle) &&
			!strings.Contains(strings.ToLower(hit.SHA), needle) {
			continue
		}
		matches = append(matches, hit)
		if len(matches) >= a.limit {
			break
		}
	}
	return matches, nil
}

// searchCode delegates to the upstream code search in default mode, or
// walks the branch tree in explicit-branch mode.
func (a *Aggregator) searchCode(ctx context.Context, query, branch string) []domain.ResultRecord {
	if branch == "" {
		hits, err := a.gateway.SearchCode(ctx, a.scope, query, a.limit)
		if err != nil {
			logger.Warn("code search failed for %s: %v", a.scope, err)
			return []domain.ResultRecord{}
		}

		records := make([]domain.ResultRecord, 0, len(hits))
		for _, hit := range hits {
			if rec, ok := mapCodeHit(a.scope, hit, a.index); ok {
				records = append(records, rec)
			}
		}
		return records
	}

	records, err := a.scanBranchTree(ctx, query, branch)
	if err != nil {
		logger.Warn("branch tree scan failed for %s@%s: %v", a.scope, branch, err)
		return []domain.ResultRecord{}
	}
	return records
}

// scanBranchTree resolves the branch head, fetches the full recursive
// tree at that commit and keeps blob entries whose path contains the
// query, case-insensitively. Head resolution must complete before the
// tree fetch. An empty query matches every file.
func (a *Aggregator) scanBranchTree(ctx context.Context, query, branch string) ([]domain.ResultRecord, error) {
	head, err := a.gateway.GetBranchHead(ctx, a.scope, branch)
	if err != nil {
		return nil, err
	}

	entries, err := a.gateway.GetTreeRecursive(ctx, a.scope, head)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	records := make([]domain.ResultRecord, 0, a.limit)
	for _, entry := range entries {
		if entry.Type != "blob" {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(entry.Path), needle) {
			continue
		}
		if rec, ok := mapTreeEntry(a.scope, branch, entry); ok {
			records = append(records, rec)
			if len(records) >= a.limit {
				break
			}
		}
	}
	return records, nil
}
