// Package tools implements the five knowledge query operations and their
// registry.
//
// Each operation is a pure function of its validated input and the knowledge
// store: filter by a category/group key, select optional fields from the
// caller's flags, re-assemble the output document. Operations never mutate
// the store, so identical input always produces byte-identical output.
//
// The Registry carries one Tool per operation with its name, description and
// input schema; transports use it both to answer tools/list and to validate
// and execute tools/call.
package tools
