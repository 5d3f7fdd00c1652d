// Package gemini wraps the Google GenAI client for text generation through
// the Vertex AI backend.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/genai"
)

// Client sends user messages to Gemini together with a per-request
// instruction context. The underlying genai client is created lazily on
// first use; a failed attempt is retried on the next call, so a transient
// auth or network problem at startup never wedges the process.
type Client struct {
	project  string
	location string
	model    string
	logger   *slog.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewClient creates a Client for the given project, location, and model.
// No network activity happens here; the backend is contacted on first Generate.
func NewClient(project, location, model string, logger *slog.Logger) *Client {
	return &Client{
		project:  project,
		location: location,
		model:    model,
		logger:   logger,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// ensureClient initializes the genai client at most once.
// Safe for concurrent use; callers after a failure re-attempt the init.
func (c *Client) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  c.project,
		Location: c.location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	c.client = client
	c.logger.Info("vertex ai client initialized", "project", c.project, "location", c.location)
	return client, nil
}

// Generate sends message to the model with instruction as the system
// instruction and returns the generated text. maxTokens caps the output when
// positive. Failures are returned as errors; the caller decides how they
// surface to the end user.
func (c *Client) Generate(ctx context.Context, message, instruction string, maxTokens int32) (string, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = maxTokens
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(message), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return resp.Text(), nil
}
