// Package domain contains the core business entities for the search engine:
// queries, results, source kinds, history entries and domain errors.
// It has no dependencies on other packages.
package domain
