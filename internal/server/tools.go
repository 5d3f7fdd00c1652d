package server

// Tool names exposed through tools/call.
const (
	toolGenerateContent = "generate-content"
	toolChat            = "chat"
	toolAnalyzeDocument = "analyze-document"
	toolMemoryRead      = "memory-read"
	toolMemoryWrite     = "memory-write"
)

// toolDescriptor describes one tool in the tools/list catalog.
type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// toolsResult is the result payload of a tools/list response.
type toolsResult struct {
	Tools []toolDescriptor `json:"tools"`
}

// toolCatalog is the static tool catalog. It never changes within a process
// lifetime, so tools/list is idempotent.
var toolCatalog = []toolDescriptor{
	{
		Name:        toolGenerateContent,
		Description: "Generate content with Gemini, enriched with shared memory context",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt":     map[string]any{"type": "string"},
				"max_tokens": map[string]any{"type": "integer"},
			},
			"required": []string{"prompt"},
		},
	},
	{
		Name:        toolChat,
		Description: "Chat with Gemini",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{"type": "string"},
				"system":  map[string]any{"type": "string"},
			},
			"required": []string{"message"},
		},
	},
	{
		Name:        toolAnalyzeDocument,
		Description: "Analyze a document with Gemini",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"document_text":   map[string]any{"type": "string"},
				"analysis_prompt": map[string]any{"type": "string"},
			},
			"required": []string{"document_text", "analysis_prompt"},
		},
	},
	{
		Name:        toolMemoryRead,
		Description: "Read recent entries from the shared cross-agent memory",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer"},
			},
		},
	},
	{
		Name:        toolMemoryWrite,
		Description: "Write an entry to the shared cross-agent memory",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"category":   map[string]any{"type": "string"},
				"summary":    map[string]any{"type": "string"},
				"workstream": map[string]any{"type": "string"},
			},
			"required": []string{"category", "summary"},
		},
	},
}

// stringArg returns a string argument, or "" when absent or non-string.
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// intArg returns an integer argument, or def when absent or non-numeric.
// JSON numbers decode as float64, so that is the case to handle.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}
