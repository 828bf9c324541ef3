// Package domain defines the core types for repolens: category-tagged
// resource identifiers, search result records, fetched documents, and
// the locator entries that tie the two together within a session.
package domain
