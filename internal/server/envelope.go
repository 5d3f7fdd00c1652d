package server

import "encoding/json"

// JSON-RPC error codes. Backend and store failures share one server-error
// code in strict mode; unknown methods and unknown tools share -32601 the
// way MCP clients expect.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeServerError    = -32000
)

// rpcRequest is the decoded JSON-RPC request envelope.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	ID      json.RawMessage `json:"id,omitempty"`
	Params  rpcParams       `json:"params"`
}

// rpcParams carries tool dispatch parameters for tools/call.
type rpcParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// rpcResponse is the response envelope. Exactly one of Result or Error is
// set; both are omitted from the wire when nil so the invariant is visible
// in the encoded form.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError is the structured error payload of a failed request.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// defaultID is substituted when a request omits its identifier.
var defaultID = json.RawMessage("1")

// requestID returns the identifier to echo back for a request.
func requestID(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return defaultID
	}
	return raw
}

// resultResponse builds a success envelope.
func resultResponse(id json.RawMessage, result any) rpcResponse {
	return rpcResponse{JSONRPC: "2.0", ID: requestID(id), Result: result}
}

// errorResponse builds an error envelope.
func errorResponse(id json.RawMessage, code int, message string) rpcResponse {
	return rpcResponse{JSONRPC: "2.0", ID: requestID(id), Error: &rpcError{Code: code, Message: message}}
}

// contentBlock is one element of a tool result's content list.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// callResult is the result payload of a tools/call response.
type callResult struct {
	Content []contentBlock `json:"content"`
}

// textResult wraps text as a single-text-block tool result.
func textResult(text string) callResult {
	return callResult{Content: []contentBlock{{Type: "text", Text: text}}}
}
