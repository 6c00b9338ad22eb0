package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mcp-mailstore/internal/tools"
)

const protocolVersion = "2024-11-05"

// maxRequestSize bounds a single request line
const maxRequestSize = 10 * 1024 * 1024

// JSON-RPC error codes
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInternalError  = -32603
)

type request struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      interface{}            `json:"id,omitempty"`
	Method  string                 `json:"method"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

type response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *rpcError   `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server answers MCP requests for the folder tools
type Server struct {
	logger  *logrus.Logger
	tools   *tools.Registry
	version string
}

// NewServer creates a new MCP server instance
func NewServer(registry *tools.Registry, version string, logger *logrus.Logger) *Server {
	return &Server{
		logger:  logger,
		tools:   registry,
		version: version,
	}
}

// Run serves newline-delimited JSON-RPC requests from in until EOF or ctx is done.
// A line that is not valid JSON gets a parse error response.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("Starting MCP server with stdio transport")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestSize)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var resp *response
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.WithError(err).Warn("Failed to parse request")
			resp = &response{
				JSONRPC: "2.0",
				Error:   &rpcError{Code: codeParseError, Message: fmt.Sprintf("Parse error: %v", err)},
			}
		} else {
			resp = s.handleRequest(req)
		}
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			s.logger.WithError(err).Error("Failed to encode response")
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

// handleRequest processes an MCP request. Notifications get no response.
func (s *Server) handleRequest(req request) *response {
	if req.ID == nil && req.Method != "initialize" {
		s.logger.WithField("method", req.Method).Debug("Ignoring notification")
		return nil
	}

	resp := &response{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "initialize":
		resp.Result = map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "mcp-mailstore",
				"version": s.version,
			},
		}
	case "tools/list":
		resp.Result = map[string]interface{}{
			"tools": s.tools.GetToolDefinitions(),
		}
	case "tools/call":
		result, rpcErr := s.callTool(req.Params)
		resp.Result = result
		resp.Error = rpcErr
	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("Method not found: %s", req.Method)}
	}
	return resp
}

func (s *Server) callTool(params map[string]interface{}) (interface{}, *rpcError) {
	toolName, _ := params["name"].(string)
	arguments, _ := params["arguments"].(map[string]interface{})
	if arguments == nil {
		arguments = map[string]interface{}{}
	}

	tool, exists := s.tools.GetTool(toolName)
	if !exists {
		return nil, &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("Tool not found: %s", toolName)}
	}

	result, err := tool.Execute(arguments)
	if err != nil {
		s.logger.WithError(err).WithField("tool", toolName).Warn("Tool failed")
		return nil, &rpcError{Code: codeInternalError, Message: err.Error()}
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		resultJSON = []byte(fmt.Sprintf("%v", result))
	}

	return map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": string(resultJSON),
			},
		},
	}, nil
}
