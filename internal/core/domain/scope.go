package domain

import "fmt"

// RepoScope identifies the single repository a session is bound to.
// Two sessions against different repositories never share scope.
type RepoScope struct {
	Owner string
	Name  string
}

// String renders the scope as "owner/name".
func (s RepoScope) String() string {
	return s.Owner + "/" + s.Name
}

// BlobURL builds a browsable URL for a file at a ref.
func (s RepoScope) BlobURL(ref, path string) string {
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", s.Owner, s.Name, ref, path)
}

// CommitURL builds a browsable URL for a commit.
func (s RepoScope) CommitURL(sha string) string {
	return fmt.Sprintf("https://github.com/%s/%s/commit/%s", s.Owner, s.Name, sha)
}
