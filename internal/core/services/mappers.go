package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/repolens/internal/core/domain"
)

// Category mappers turn one upstream search hit into a uniform result
// record. Each returns false when the hit lacks its minimum required
// field. The code mapper additionally records a locator entry so the
// identifier can be redeemed for blob content later in the session.

func mapIssueHit(hit domain.IssueHit) (domain.ResultRecord, bool) {
	if hit.Number == 0 {
		return domain.ResultRecord{}, false
	}

	title := hit.Title
	if title == "" {
		title = fmt.Sprintf("Issue #%d", hit.Number)
	}

	return domain.ResultRecord{
		ID:    domain.NewResourceID(domain.CategoryIssue, strconv.Itoa(hit.Number)).String(),
		Title: title,
		URL:   hit.URL,
	}, true
}

func mapPullHit(hit domain.IssueHit) (domain.ResultRecord, bool) {
	if hit.Number == 0 {
		return domain.ResultRecord{}, false
	}

	title := hit.Title
	if title == "" {
		title = fmt.Sprintf("PR #%d", hit.Number)
	}

	return domain.ResultRecord{
		ID:    domain.NewResourceID(domain.CategoryPull, strconv.Itoa(hit.Number)).String(),
		Title: title,
		URL:   hit.URL,
	}, true
}

func mapCommitHit(hit domain.CommitHit) (domain.ResultRecord, bool) {
	if hit.SHA == "" {
		return domain.ResultRecord{}, false
	}

	title := firstLine(hit.Message)
	if title == "" {
		title = "Commit " + shortSHA(hit.SHA)
	}

	return domain.ResultRecord{
		ID:    domain.NewResourceID(domain.CategoryCommit, hit.SHA).String(),
		Title: title,
		URL:   hit.URL,
	}, true
}

// mapCodeHit maps a default-mode code search hit and records its
// locator in the index, keyed by the blob content hash. This is the
// only category redeemed via the index rather than recomputed at
// fetch time.
func mapCodeHit(scope domain.RepoScope, hit domain.CodeHit, index *Index) (domain.ResultRecord, bool) {
	if hit.SHA == "" {
		return domain.ResultRecord{}, false
	}

	title := hit.Path
	if title == "" {
		title = hit.SHA
	}

	id := domain.NewResourceID(domain.CategoryCode, hit.SHA)
	index.Put(id.String(), domain.IndexEntry{
		Owner:        scope.Owner,
		Repo:         scope.Name,
		Path:         hit.Path,
		ContentHash:  hit.SHA,
		CanonicalURL: hit.URL,
	})

	return domain.ResultRecord{
		ID:      id.String(),
		Title:   title,
		URL:     hit.URL,
		Path:    hit.Path,
		Snippet: hit.Fragment,
	}, true
}

// mapTreeEntry maps a blob entry from an explicit-branch tree scan.
// Branch-scoped code results are addressed by path at the branch, not
// redeemed through the index, so no locator is recorded.
func mapTreeEntry(scope domain.RepoScope, branch string, entry domain.TreeEntry) (domain.ResultRecord, bool) {
	if entry.SHA == "" {
		return domain.ResultRecord{}, false
	}

	return domain.ResultRecord{
		ID:    domain.NewResourceID(domain.CategoryCode, entry.SHA).String(),
		Title: entry.Path,
		URL:   scope.BlobURL(branch, entry.Path),
		Path:  entry.Path,
	}, true
}

// firstLine returns the first line of a commit message, trimmed.
func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}

// shortSHA abbreviates a commit hash to seven characters.
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
