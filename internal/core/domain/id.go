package domain

import (
	"errors"
	"strings"
)

// Category identifies the kind of repository resource an identifier
// refers to. It is the sole dispatch key used at fetch time.
type Category string

const (
	CategoryIssue  Category = "issue"
	CategoryPull   Category = "pr"
	CategoryCommit Category = "commit"
	CategoryCode   Category = "code"
)

// Categories returns all valid categories in the fixed merge order
// used by search: issues, pull requests, commits, code.
func Categories() []Category {
	return []Category{CategoryIssue, CategoryPull, CategoryCommit, CategoryCode}
}

var (
	// ErrNotAnID indicates a token has no category separator and should
	// be treated as a plain repository path.
	ErrNotAnID = errors.New("domain: token is not a tagged identifier")

	// ErrUnknownCategory indicates a token carries a tag outside the
	// four valid categories.
	ErrUnknownCategory = errors.New("domain: unknown identifier category")
)

// ResourceID is a parsed category-tagged identifier. Its string form
// ("issue:42", "code:<blob-sha>") is what search returns to callers and
// what fetch redeems; it must round-trip as an opaque string.
type ResourceID struct {
	Category Category
	Value    string
}

// NewResourceID builds an identifier from a category and value.
func NewResourceID(c Category, value string) ResourceID {
	return ResourceID{Category: c, Value: value}
}

// String renders the identifier in its wire form.
func (r ResourceID) String() string {
	return string(r.Category) + ":" + r.Value
}

// ParseResourceID splits a token at the first separator and validates
// the tag. It returns ErrNotAnID for separator-less tokens (callers
// treat those as literal repository paths) and ErrUnknownCategory for
// tags outside the four categories.
func ParseResourceID(token string) (ResourceID, error) {
	sep := strings.Index(token, ":")
	if sep < 0 {
		return ResourceID{}, ErrNotAnID
	}

	tag, value := Category(token[:sep]), token[sep+1:]
	switch tag {
	case CategoryIssue, CategoryPull, CategoryCommit, CategoryCode:
		return ResourceID{Category: tag, Value: value}, nil
	default:
		return ResourceID{}, ErrUnknownCategory
	}
}
