// Package driven defines the secondary ports (SPI) of the search engine:
// the interfaces the core requires from providers, storage, caching and
// external capabilities. Adapters implement these interfaces.
package driven
