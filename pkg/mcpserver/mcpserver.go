// Package mcpserver exposes the sort engine as Model Context Protocol tools
// so agents can request step logs the same way the HTTP API serves them.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhuss/stepsort/pkg/api"
	"github.com/rhuss/stepsort/pkg/debug"
	"github.com/rhuss/stepsort/pkg/transport"
)

// Implementation identifies this server to MCP clients.
var Implementation = &mcp.Implementation{Name: "stepsort", Version: "v1.0.0"}

// SortInput is the argument object of the sort tool.
type SortInput struct {
	Array     []float64 `json:"array" jsonschema:"the numbers to sort"`
	Algorithm string    `json:"algorithm,omitempty" jsonschema:"quicksort, bubblesort or mergesort (default quicksort)"`
}

// Server wraps an mcp.Server whose tools dispatch to a Sorter.
type Server struct {
	sorter transport.Sorter
	server *mcp.Server
}

// New builds the MCP server and registers its tools.
func New(sorter transport.Sorter) *Server {
	s := &Server{
		sorter: sorter,
		server: mcp.NewServer(Implementation, nil),
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "sort",
		Description: "Sorts an array of numbers and returns every intermediate step " +
			"(array snapshot, pivot index, compared indices) as JSON.",
	}, s.handleSort)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_algorithms",
		Description: "Lists the supported sorting algorithms.",
	}, s.handleListAlgorithms)

	return s
}

// MCPServer returns the underlying SDK server, e.g. to run it over a
// non-HTTP transport.
func (s *Server) MCPServer() *mcp.Server { return s.server }

// Handler returns the streamable HTTP handler for mounting on a mux.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

func (s *Server) handleSort(ctx context.Context, _ *mcp.CallToolRequest, in SortInput) (*mcp.CallToolResult, struct{}, error) {
	req, err := api.NewSortRequest(in.Array, api.Algorithm(in.Algorithm))
	if err != nil {
		return nil, struct{}{}, fmt.Errorf("encoding sort request: %w", err)
	}

	debug.Log("mcp", "sort tool called", "algorithm", in.Algorithm, "length", len(in.Array))

	resp, err := s.sorter.Sort(ctx, req)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			return errorResult(apiErr.Message), struct{}{}, nil
		}
		return nil, struct{}{}, err
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, struct{}{}, fmt.Errorf("encoding sort response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, struct{}{}, nil
}

func (s *Server) handleListAlgorithms(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, struct{}, error) {
	names := make([]string, 0, len(api.Algorithms()))
	for _, a := range api.Algorithms() {
		names = append(names, string(a))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: strings.Join(names, "\n")}},
	}, struct{}{}, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
