// Package api defines the wire types for the stepsort service.
//
// This package provides the data types exchanged between clients and the
// sort engine: the sort request and response, the recorded [Step], the
// algorithm identifiers, and the structured [APIError] taxonomy.
//
// The package has zero external dependencies (Go standard library only) and
// performs no I/O. Request validation happens here so that every transport
// (HTTP, MCP, CLI) rejects malformed input the same way before any sort
// runs.
//
// Core types:
//   - [SortRequest]: client request carrying a raw array and an algorithm name
//   - [SortResponse]: the ordered step log plus the final sorted array
//   - [Step]: one snapshot of the working array with the indices involved
//   - [APIError]: structured error with type, code, param, and message
package api
