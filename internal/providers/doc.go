// Package providers groups the source provider implementations, one
// subpackage per source kind: history, place, ride and user. Each provider
// turns a query into candidates from its own domain and knows nothing about
// ranking, merging or caching.
package providers
