// Package sqlite provides SQLite-backed storage for the bounded search
// history. The schema lives in embedded migration files applied in order
// at startup.
package sqlite
