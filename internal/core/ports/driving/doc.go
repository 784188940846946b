// Package driving defines the primary ports (API) through which external
// actors submit queries to the search engine and record selections.
package driving
