// Package engine implements the sort dispatcher for stepsort.
// The Engine struct implements transport.Sorter, bridging validated sort
// requests from any transport (HTTP, MCP, CLI) to the instrumented
// algorithms in pkg/sorting. It owns request validation, algorithm
// selection, working-array ownership and sort metrics. The engine holds
// no mutable state between calls.
package engine
