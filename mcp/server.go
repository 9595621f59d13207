// Package mcp serves the airdrop workflow as MCP tools over stdio:
// line-delimited JSON-RPC 2.0 in, one response per request out. Workflow
// errors travel inside tool results; protocol errors are reserved for
// malformed JSON and unknown methods.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/metrics"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/workflow"
)

// ServerName and ServerVersion identify this server during initialize.
const (
	ServerName    = "employees-airdrop-rewards"
	ServerVersion = "1.0.0"
)

// Server dispatches MCP requests to one workflow orchestrator.
type Server struct {
	orchestrator *workflow.Orchestrator
	schemas      map[string]*gojsonschema.Schema // tool name → compiled input schema
	log          *slog.Logger
}

// NewServer creates a Server. Tool input schemas are compiled up front so a
// broken schema fails at startup, not on the first call.
func NewServer(o *workflow.Orchestrator, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	schemas := make(map[string]*gojsonschema.Schema, len(toolTable))
	for _, tool := range toolTable {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(tool.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("mcp: compile schema for %s: %w", tool.Name, err)
		}
		schemas[tool.Name] = schema
	}
	return &Server{orchestrator: o, schemas: schemas, log: log}, nil
}

// Serve runs the stdio loop until stdin closes.
func (s *Server) Serve(ctx context.Context) error {
	return s.ServeIO(ctx, os.Stdin, os.Stdout)
}

// ServeIO is Serve with explicit streams, for tests. One JSON-RPC message per
// line; notifications get no response.
func (s *Server) ServeIO(ctx context.Context, r io.Reader, w io.Writer) error {
	if r == nil || w == nil {
		return errors.New("mcp: reader and writer must not be nil")
	}

	scanner := bufio.NewScanner(r)
	// Large employee lists arrive inline in tool arguments.
	const (
		initialBufSize = 64 * 1024
		maxScanSize    = 10 * 1024 * 1024
	)
	scanner.Buffer(make([]byte, 0, initialBufSize), maxScanSize)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			resp := response{
				JSONRPC: jsonRPCVersion,
				Error:   &rpcError{Code: CodeParseError, Message: "parse error: " + err.Error()},
			}
			if encErr := enc.Encode(resp); encErr != nil {
				return fmt.Errorf("mcp: write: %w", encErr)
			}
			continue
		}

		resp, reply := s.dispatch(ctx, &req)
		if !reply {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("mcp: write: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("mcp: read: %w", err)
	}
	return nil
}

// dispatch routes one request. reply is false for notifications.
func (s *Server) dispatch(ctx context.Context, req *request) (resp response, reply bool) {
	if req.ID == nil {
		// Notification. notifications/initialized is the only one expected;
		// all are ignored without a response.
		return response{}, false
	}

	resp = response{JSONRPC: jsonRPCVersion, ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = s.handleInitialize(req.Params)
	case "ping":
		resp.Result = struct{}{}
	case "tools/list":
		resp.Result = s.handleToolsList()
	case "tools/call":
		result, err := s.handleToolCall(ctx, req.Params)
		if err != nil {
			resp.Error = &rpcError{Code: CodeInvalidRequest, Message: err.Error()}
		} else {
			resp.Result = result
		}
	default:
		resp.Error = &rpcError{
			Code:    CodeMethodNotFound,
			Message: fmt.Sprintf("method not found: %s", req.Method),
		}
	}
	return resp, true
}

func (s *Server) handleInitialize(params json.RawMessage) *InitializeResponse {
	var init InitializeRequest
	_ = json.Unmarshal(params, &init)
	s.log.Info("client connected",
		"client", init.ClientInfo.Name,
		"protocol", init.ProtocolVersion)

	return &InitializeResponse{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    ServerCapabilities{Tools: &ToolsCapability{}},
		ServerInfo:      Implementation{Name: ServerName, Version: ServerVersion},
	}
}

func (s *Server) handleToolsList() *ToolsListResponse {
	tools := make([]Tool, len(toolTable))
	for i, tool := range toolTable {
		tools[i] = Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: json.RawMessage(tool.InputSchema),
		}
	}
	return &ToolsListResponse{Tools: tools}
}

// handleToolCall runs one tool. The returned error is a protocol error
// (malformed params); every workflow outcome, including failures, comes back
// as a tool result.
func (s *Server) handleToolCall(ctx context.Context, params json.RawMessage) (*ToolCallResponse, error) {
	var call ToolCallRequest
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, fmt.Errorf("invalid tools/call params: %w", err)
	}

	tool, ok := findTool(call.Name)
	if !ok {
		return errorResult(fmt.Sprintf("validation error: unknown tool %q", call.Name)), nil
	}

	started := time.Now()
	text, err := s.callTool(ctx, tool, call.Arguments)
	outcome := outcomeLabel(err)
	metrics.ObserveTool(tool.Name, outcome, time.Since(started))

	if err != nil {
		s.log.Warn("tool call failed", "tool", tool.Name, "outcome", outcome, "error", err)
		return errorResult(err.Error()), nil
	}
	s.log.Info("tool call ok", "tool", tool.Name)
	return textResult(text), nil
}

// callTool validates arguments against the tool's schema, then runs the
// handler. Panics become execution errors so one bad call never kills the
// session.
func (s *Server) callTool(ctx context.Context, tool *toolDescriptor, args json.RawMessage) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tool panicked", "tool", tool.Name, "panic", r)
			err = fmt.Errorf("%w: internal failure in %s: %v", workflow.ErrExecution, tool.Name, r)
		}
	}()

	if err := s.validateArgs(tool, args); err != nil {
		return "", err
	}
	return tool.Handler(ctx, s.orchestrator, args)
}

func (s *Server) validateArgs(tool *toolDescriptor, args json.RawMessage) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	result, err := s.schemas[tool.Name].Validate(gojsonschema.NewBytesLoader(args))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", workflow.ErrValidation, tool.Name, err)
	}
	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			details[i] = desc.String()
		}
		return fmt.Errorf("%w: %s: %v", workflow.ErrValidation, tool.Name, details)
	}
	return nil
}

func findTool(name string) (*toolDescriptor, bool) {
	for i := range toolTable {
		if toolTable[i].Name == name {
			return &toolTable[i], true
		}
	}
	return nil, false
}

// outcomeLabel maps a tool error to its metrics outcome.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, workflow.ErrValidation):
		return "validation"
	case errors.Is(err, workflow.ErrPrecondition):
		return "precondition"
	default:
		return "execution"
	}
}
