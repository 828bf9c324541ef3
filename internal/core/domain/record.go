package domain

// ResultRecord is a single uniform search hit returned to the caller.
// It is produced by a category mapper and never mutated afterwards.
type ResultRecord struct {
	// ID is the category-tagged opaque identifier ("issue:42",
	// "code:<blob-sha>") redeemable by fetch.
	ID string

	// Title is a human-readable label for the hit.
	Title string

	// URL is the canonical browsable URL of the resource.
	URL string

	// Path is the repository-relative file path (code hits only).
	Path string

	// Snippet is an optional matched-text excerpt (code hits only).
	Snippet string
}

// IndexEntry is the resolvable locator recorded for code hits so their
// identifiers can be redeemed for byte content later in the session.
type IndexEntry struct {
	Owner        string
	Repo         string
	Path         string
	ContentHash  string
	CanonicalURL string
}

// Doc is a normalized fetch result. Text is always decoded to plain
// text; no transport encoding ever reaches the caller.
type Doc struct {
	ID       string
	Title    string
	Text     string
	URL      string
	Metadata map[string]any
}
