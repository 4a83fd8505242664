package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/tools"
)

// The hub speaks a line-delimited JSON-RPC 2.0 protocol over stdio:
// initialize, tools/list, tools/call.

const protocolVersion = "2024-11-05"

type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type stdioServer struct {
	manager *tools.Manager

	outMu sync.Mutex
	out   io.Writer
}

func newStdioServer(manager *tools.Manager, out io.Writer) *stdioServer {
	return &stdioServer{manager: manager, out: out}
}

// serve reads requests line by line until the input closes. Notifications
// produce no response.
func (s *stdioServer) serve(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			log.Printf("unable to parse JSON-RPC request: %v", err)
			continue
		}

		if resp := s.handleRequest(&req); resp != nil {
			s.writeResponse(resp)
		}
	}
	return scanner.Err()
}

func (s *stdioServer) handleRequest(req *jsonRPCRequest) *jsonRPCResponse {
	switch req.Method {
	case "initialize":
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			Result: mustJSON(map[string]any{
				"protocolVersion": protocolVersion,
				"capabilities":    map[string]any{"tools": map[string]any{}},
				"serverInfo": map[string]string{
					"name":    "insighthub-server",
					"version": "0.1.0",
				},
			}),
			ID: req.ID,
		}
	case "notifications/initialized":
		return nil
	case "tools/list":
		defs := s.manager.Definitions()
		list := make([]map[string]any, 0, len(defs))
		for _, def := range defs {
			list = append(list, map[string]any{
				"name":        def.Function.Name,
				"description": def.Function.Description,
				"inputSchema": def.Function.Parameters,
			})
		}
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			Result:  mustJSON(map[string]any{"tools": list}),
			ID:      req.ID,
		}
	case "tools/call":
		return s.handleToolsCall(req)
	default:
		return errorResponse(req.ID, -32601, "Method not found")
	}
}

func (s *stdioServer) handleToolsCall(req *jsonRPCRequest) *jsonRPCResponse {
	var payload struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &payload); err != nil {
		return errorResponse(req.ID, -32602, "Invalid params")
	}

	result, err := s.manager.Execute(payload.Name, string(payload.Arguments))
	if err != nil {
		return errorResponse(req.ID, -32602, fmt.Sprintf("tool call failed: %v", err))
	}

	return &jsonRPCResponse{
		JSONRPC: "2.0",
		Result: mustJSON(map[string]any{
			"content": []map[string]string{{"type": "text", "text": result}},
		}),
		ID: req.ID,
	}
}

func (s *stdioServer) writeResponse(resp *jsonRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("unable to marshal JSON-RPC response: %v", err)
		return
	}
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, "%s\n", data)
}

func errorResponse(id json.RawMessage, code int, message string) *jsonRPCResponse {
	return &jsonRPCResponse{
		JSONRPC: "2.0",
		Error:   &jsonRPCError{Code: code, Message: message},
		ID:      id,
	}
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
