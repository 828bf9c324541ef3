// Package services implements the result-indexing and resolution
// protocol: the session-scoped resource locator index, the category
// mappers that turn upstream search hits into uniform records, the
// search aggregator, and the fetch resolver that redeems identifiers.
package services
