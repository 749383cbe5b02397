// Package mcp exposes the fuzzy matcher as a Model Context Protocol tool
// served over stdio.
package mcp

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/fzmatch/internal/bridge"
	"github.com/standardbeagle/fzmatch/internal/config"
	"github.com/standardbeagle/fzmatch/internal/pipeline"
	"github.com/standardbeagle/fzmatch/internal/ranking"
	"github.com/standardbeagle/fzmatch/internal/source"
	"github.com/standardbeagle/fzmatch/internal/version"
)

// ToolFuzzyMatch is the name of the only tool the server registers
const ToolFuzzyMatch = "fuzzy_match"

// Server wraps an MCP server around the match pipeline
type Server struct {
	server           *mcp.Server
	cfg              *config.Config
	engine           *pipeline.Engine
	diagnosticLogger *DiagnosticLogger
}

// NewServer creates a server whose tool defaults come from cfg. A nil cfg
// uses config.Default().
func NewServer(cfg *config.Config) (*Server, error) {
	return newServer(cfg, NewDiagnosticLogger(true))
}

func newServer(cfg *config.Config, logger *DiagnosticLogger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	// Reject an unusable configuration before serving anything
	if _, err := cfg.Options(); err != nil {
		return nil, fmt.Errorf("invalid match configuration: %w", err)
	}

	s := &Server{
		cfg:              cfg,
		engine:           pipeline.NewEngine(nil),
		diagnosticLogger: logger,
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "fzmatch-mcp-server",
		Version: version.Info(),
	}, nil)
	s.registerTools()

	logger.Printf("MCP server initialized (build %s)", version.BuildID())
	return s, nil
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name: ToolFuzzyMatch,
		Description: "Rank candidate lines against a query. A query containing a space is matched as " +
			"ordered case-insensitive substrings; otherwise a fuzzy algorithm scores each line. " +
			"Returns matched byte offsets per line and a map from shortened lines to their originals.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Query text",
				},
				"candidates": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					Description: "Lines to rank",
				},
				"winwidth": {
					Type:        "integer",
					Description: "Display width in columns; 0 disables truncation",
				},
				"enable_icon": {
					Type:        "boolean",
					Description: "Candidates start with a 4-byte icon block",
				},
				"line_splitter": {
					Type:        "string",
					Enum:        []any{"Full", "TagNameOnly", "FileNameOnly", "GrepExcludeFilePath"},
					Description: "Part of each line the fuzzy algorithm sees",
				},
				"algo": {
					Type:        "string",
					Enum:        []any{"fzf", "sahilm", "jaro-winkler"},
					Description: "Fuzzy algorithm for space-free queries",
				},
				"limit": {
					Type:        "integer",
					Description: "Maximum rows returned; 0 returns all",
				},
				"dedup": {
					Type:        "boolean",
					Description: "Drop repeated candidates before ranking",
				},
			},
			Required: []string{"query", "candidates"},
		},
	}, s.handleFuzzyMatch)
}

func (s *Server) handleFuzzyMatch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(ToolFuzzyMatch, func() (*mcp.CallToolResult, error) {
		params, err := parseFuzzyMatchParams(req.Params.Arguments)
		if err != nil {
			return createErrorResponse(ToolFuzzyMatch, err)
		}

		defaults, err := s.cfg.Options()
		if err != nil {
			return createErrorResponse(ToolFuzzyMatch, err)
		}
		opts, err := params.options(defaults)
		if err != nil {
			return createErrorResponse(ToolFuzzyMatch, err)
		}
		limit, err := params.limit(s.cfg.Match.Limit)
		if err != nil {
			return createErrorResponse(ToolFuzzyMatch, err)
		}

		candidates := params.Candidates
		if params.dedup(s.cfg.Match.Dedup) {
			candidates = dedupe(candidates)
		}

		start := time.Now()
		presented, err := s.engine.FuzzyMatch(ctx, params.Query, candidates, opts)
		if err != nil {
			s.diagnosticLogger.Errorf("%s %q: %v", ToolFuzzyMatch, params.Query, err)
			return createErrorResponse(ToolFuzzyMatch, err)
		}
		s.diagnosticLogger.Printf("%s %q: %d/%d matched in %v",
			ToolFuzzyMatch, params.Query, presented.Len(), len(candidates), time.Since(start))

		return createJSONResponse(FuzzyMatchResponse{
			Result:   bridge.Encode(presented.Head(limit)),
			Total:    len(candidates),
			Matched:  presented.Len(),
			Warnings: params.Warnings,
		})
	})
}

func dedupe(candidates []string) []string {
	d := source.NewDeduper()
	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if d.Add(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// recoverFromPanic turns a panicking handler into an error result. A NaN
// score is a broken scorer, not a bad request, so it is logged and re-raised.
func (s *Server) recoverFromPanic(operation string, handler func() (*mcp.CallToolResult, error)) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			if nanErr, ok := r.(ranking.NaNScoreError); ok {
				s.diagnosticLogger.Errorf("%s: %v", operation, nanErr)
				panic(nanErr)
			}
			s.diagnosticLogger.Errorf("PANIC RECOVERED in %s: %v", operation, r)
			s.diagnosticLogger.Printf("Stack trace: %s", debug.Stack())
			result, err = createErrorResponse(operation, fmt.Errorf("internal error: %v", r))
		}
	}()

	return handler()
}

// Start serves over stdio until ctx is cancelled or the client disconnects
func (s *Server) Start(ctx context.Context) error {
	s.diagnosticLogger.Printf("Starting MCP server with stdio transport (log: %s)", s.diagnosticLogger.GetLogPath())
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// GetHandlerForTesting returns the handler registered for toolName
func (s *Server) GetHandlerForTesting(toolName string) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch toolName {
	case ToolFuzzyMatch:
		return s.handleFuzzyMatch
	default:
		return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return createErrorResponse("GetHandlerForTesting", fmt.Errorf("unknown tool: %s", toolName))
		}
	}
}

// Close flushes and closes the diagnostic log
func (s *Server) Close() error {
	s.diagnosticLogger.Printf("MCP server shutdown complete")
	return s.diagnosticLogger.Close()
}
