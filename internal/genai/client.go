// Package genai wraps the Google GenAI client behind small interfaces the
// rest of the pipeline can stub in tests. Structured extraction uses JSON
// response mode with temperature zero; embeddings use the dedicated
// embedding model.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultExtractionModel = "gemini-2.5-flash"
	defaultEmbeddingModel  = "gemini-embedding-001"
)

// Generator produces model output for a prompt. Implemented by Client and
// stubbed in tests.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a dense vector. Implemented by Client and
// stubbed in tests.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client wraps the GenAI SDK for deterministic JSON generation and
// text embeddings.
type Client struct {
	client          *genai.Client
	extractionModel string
	embeddingModel  string
}

// NewClient creates a Client against the Gemini API backend. Model names
// fall back to sensible defaults when empty.
func NewClient(ctx context.Context, apiKey, extractionModel, embeddingModel string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("genai api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if extractionModel = strings.TrimSpace(extractionModel); extractionModel == "" {
		extractionModel = defaultExtractionModel
	}
	if embeddingModel = strings.TrimSpace(embeddingModel); embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	return &Client{
		client:          client,
		extractionModel: extractionModel,
		embeddingModel:  embeddingModel,
	}, nil
}

// GenerateJSON sends the prompt with temperature zero and JSON response
// mode, and returns the raw JSON text with any markdown fences stripped.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("genai client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	temperature := float32(0)
	cfg := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.extractionModel, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := ExtractJSON(builder.String())
	if output == "" {
		return "", errors.New("genai api returned empty response")
	}

	return output, nil
}

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("genai client is not initialized")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("embedding text must not be empty")
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: text}},
	}}

	resp, err := c.client.Models.EmbedContent(ctx, c.embeddingModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("genai api returned empty embedding")
	}

	return resp.Embeddings[0].Values, nil
}

func (c *Client) ExtractionModel() string {
	if c == nil {
		return ""
	}
	return c.extractionModel
}

// ExtractJSON strips markdown code fences the model sometimes wraps JSON
// in even when JSON response mode is requested.
func ExtractJSON(output string) string {
	output = strings.TrimSpace(output)

	if strings.HasPrefix(output, "```") {
		output = strings.TrimPrefix(output, "```json")
		output = strings.TrimPrefix(output, "```")
		if idx := strings.LastIndex(output, "```"); idx >= 0 {
			output = output[:idx]
		}
		output = strings.TrimSpace(output)
	}

	return output
}
