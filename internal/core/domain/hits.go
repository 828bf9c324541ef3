package domain

import "time"

// IssueHit is one upstream issue or pull request search result.
type IssueHit struct {
	Number int
	Title  string
	URL    string
}

// CommitHit is one upstream commit, from search or branch enumeration.
type CommitHit struct {
	SHA     string
	Message string
	URL     string
}

// CodeHit is one upstream code search result.
type CodeHit struct {
	SHA      string
	Path     string
	URL      string
	Fragment string
}

// TreeEntry is one entry of a recursive repository tree listing.
type TreeEntry struct {
	Type string
	Path string
	SHA  string
	Size int
}

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
	Date  time.Time
}

// IssueDetail is a fully fetched issue.
type IssueDetail struct {
	Number int
	Title  string
	Body   string
	State  string
	Labels []string
	URL    string
}

// PullDetail is a fully fetched pull request.
type PullDetail struct {
	Number  int
	Title   string
	Body    string
	State   string
	Merged  bool
	HeadRef string
	BaseRef string
	URL     string
}

// CommitDetail is a fully fetched commit.
type CommitDetail struct {
	SHA       string
	Message   string
	Author    Signature
	Committer Signature
	URL       string
}

// RawContent is undecoded file or blob content as the upstream API
// returned it. Decoding to plain text happens in the fetch resolver.
type RawContent struct {
	Content  string
	Encoding string
	Size     int
}
