// Package transport defines the handler interface and middleware chain for
// the stepsort transports.
//
// The transport layer bridges external clients and the sort engine. It
// deserializes incoming requests into the types defined in pkg/api,
// dispatches them to a [Sorter], and serializes the step log (or a
// structured error) back to the client.
//
// # Handler Interface
//
// [Sorter] is the single contract between the transports and the engine.
// The HTTP adapter (pkg/transport/http), the MCP server (pkg/mcpserver) and
// the sortctl CLI all call through it.
//
// # Middleware
//
// The middleware chain wraps a Sorter with cross-cutting concerns.
// Built-in middleware provides panic recovery, request ID assignment
// (X-Request-ID) and structured logging via log/slog.
package transport
