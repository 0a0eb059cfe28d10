package generation

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider interacts with Google Gemini through the official SDK and
// maps candidate parts onto the Messages-style Response.
type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Close() {
	if p.client != nil {
		p.client.Close()
	}
}

func (p *GeminiProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	model := p.client.GenerativeModel(req.Model)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	return fromGemini(req.Model, resp), nil
}

// fromGemini keeps only the first candidate, like the Messages API returns one message
func fromGemini(model string, resp *genai.GenerateContentResponse) *Response {
	if resp == nil {
		return nil
	}
	out := &Response{Model: model, Content: []ContentBlock{}}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return out
	}

	candidate := resp.Candidates[0]
	out.StopReason = candidate.FinishReason.String()
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.Content = append(out.Content, ContentBlock{Type: "text", Text: string(txt)})
		}
	}
	return out
}
