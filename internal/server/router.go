package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jstewartrr/gemini-mcp/internal/memory"
)

// Bounded timeouts on the two outbound network calls. Both failures degrade
// per the error policy rather than hanging the request forever.
const (
	storeTimeout   = 10 * time.Second
	backendTimeout = 60 * time.Second
)

// defaultReadLimit bounds memory-read result sets when the caller gives none.
const defaultReadLimit = 5

// Generator is the generative backend boundary.
type Generator interface {
	Generate(ctx context.Context, message, instruction string, maxTokens int32) (string, error)
	Model() string
}

// Composer builds the instruction context for one generation request.
type Composer interface {
	Compose(ctx context.Context, addendum string) string
}

// TurnRecorder logs conversation turns on a best-effort basis.
type TurnRecorder interface {
	Record(ctx context.Context, conversationID, role, content string)
}

// Service holds the shared dependencies of all request handlers. One Service
// serves all concurrent requests; every dependency is safe for concurrent use.
type Service struct {
	store    memory.Store
	gen      Generator
	composer Composer
	recorder TurnRecorder
	instance string
	strict   bool
	logger   *slog.Logger
}

// NewService wires the request handlers' dependencies together.
// strict selects the error-surfacing policy: soft text results (false) or
// RPC-level errors (true) for backend and store failures on mutating paths.
func NewService(store memory.Store, gen Generator, composer Composer, recorder TurnRecorder, instance string, strict bool, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		gen:      gen,
		composer: composer,
		recorder: recorder,
		instance: instance,
		strict:   strict,
		logger:   logger,
	}
}

// handleMCP is the JSON-RPC endpoint. Every decodable request produces
// exactly one well-formed response envelope.
func (s *Service) handleMCP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, errorResponse(nil, codeParseError, "Parse error"))
		return
	}

	switch req.Method {
	case "tools/list":
		writeJSON(w, resultResponse(req.ID, toolsResult{Tools: toolCatalog}))
	case "tools/call":
		writeJSON(w, s.dispatchTool(r.Context(), req))
	default:
		writeJSON(w, errorResponse(req.ID, codeMethodNotFound, "Method not found"))
	}
}

// dispatchTool routes a tools/call request to the matching handler.
func (s *Service) dispatchTool(ctx context.Context, req rpcRequest) rpcResponse {
	args := req.Params.Arguments
	if args == nil {
		args = map[string]any{}
	}

	switch req.Params.Name {
	case toolGenerateContent, toolChat:
		message := stringArg(args, "message")
		if message == "" {
			message = stringArg(args, "prompt")
		}
		return s.generate(ctx, req.ID, message, stringArg(args, "system"), int32(intArg(args, "max_tokens", 0)))

	case toolAnalyzeDocument:
		doc := stringArg(args, "document_text")
		analysisPrompt := stringArg(args, "analysis_prompt")
		if analysisPrompt == "" {
			analysisPrompt = "Analyze this document"
		}
		return s.generate(ctx, req.ID, analysisPrompt+"\n\nDocument:\n"+doc, "", 0)

	case toolMemoryRead:
		return s.memoryRead(ctx, req.ID, intArg(args, "limit", defaultReadLimit))

	case toolMemoryWrite:
		return s.memoryWrite(ctx, req.ID, args)

	default:
		return errorResponse(req.ID, codeMethodNotFound, "Unknown tool: "+req.Params.Name)
	}
}

// generate is the shared generation path: log the user turn, compose the
// instruction context, call the backend, log the assistant turn.
func (s *Service) generate(ctx context.Context, id json.RawMessage, message, addendum string, maxTokens int32) rpcResponse {
	conversationID := uuid.NewString()

	recordCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	s.recorder.Record(recordCtx, conversationID, "user", message)
	cancel()

	composeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	instruction := s.composer.Compose(composeCtx, addendum)
	cancel()

	genCtx, cancel := context.WithTimeout(ctx, backendTimeout)
	defer cancel()
	text, err := s.gen.Generate(genCtx, message, instruction, maxTokens)
	if err != nil {
		s.logger.Error("generation failed", "conversation_id", conversationID, "err", err)
		if s.strict {
			return errorResponse(id, codeServerError, "Generation failed: "+err.Error())
		}
		// Soft mode: the failure is delivered as an ordinary result and the
		// caller inspects the text to detect it.
		text = "Error: " + err.Error()
	}

	recordCtx, cancel = context.WithTimeout(ctx, storeTimeout)
	s.recorder.Record(recordCtx, conversationID, "assistant", text)
	cancel()

	payload, err := json.Marshal(map[string]string{"response": text})
	if err != nil {
		return errorResponse(id, codeServerError, "Failed to encode response")
	}
	return resultResponse(id, textResult(string(payload)))
}

// memoryRead returns the formatted recent entries. Store failure is never a
// hard error here, in either policy mode.
func (s *Service) memoryRead(ctx context.Context, id json.RawMessage, limit int) rpcResponse {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	text := memory.UnavailableMsg
	entries, err := s.store.RecentEntries(ctx, limit)
	if err != nil {
		s.logger.Warn("memory read failed", "err", err)
	} else {
		text = memory.FormatEntries(entries)
	}
	return resultResponse(id, textResult(text))
}

// memoryWrite appends a shared memory entry sourced from this instance.
func (s *Service) memoryWrite(ctx context.Context, id json.RawMessage, args map[string]any) rpcResponse {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	category := stringArg(args, "category")
	if category == "" {
		category = "INSIGHT"
	}

	err := s.store.AppendEntry(ctx, memory.Entry{
		Source:     s.instance,
		Category:   category,
		Workstream: stringArg(args, "workstream"),
		Summary:    stringArg(args, "summary"),
	})
	if err != nil {
		s.logger.Warn("memory write failed", "err", err)
		if s.strict {
			return errorResponse(id, codeServerError, "Memory write failed: "+err.Error())
		}
		return resultResponse(id, textResult("Failed"))
	}
	return resultResponse(id, textResult("Written"))
}

// writeJSON encodes resp with a 200 status. RPC-level failures still ride a
// successful HTTP response; only transport problems change the status code.
func writeJSON(w http.ResponseWriter, resp rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("failed to write response", "err", err)
	}
}
