// Package services implements the core search engine: string similarity
// scoring, result ranking and merging, the concurrent fan-out coordinator
// and the debounced query session.
package services
