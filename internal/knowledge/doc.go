// Package knowledge holds the five read-only documents the server exposes:
// commercial principles, learned corrections, the output-format spec, the
// finance-extraction guide and the section/principle mapping.
//
// Documents ship embedded in the binary and may be overridden per file by a
// configured data directory. Each document is parsed at most once per
// process and cached for its lifetime; there is no reload or write path, so
// a loaded document is safe for concurrent reads by construction.
package knowledge
