package generation

import (
	"context"
	"strings"
)

// Request is one completion call to a text-generation provider
type Request struct {
	Prompt    string
	MaxTokens int
	Model     string
}

// ContentBlock mirrors one entry of the Anthropic Messages "content" array.
// Only blocks of type "text" carry document text.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is the single schema every provider is mapped onto
type Response struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Content    []ContentBlock `json:"content"`
}

type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// extractText validates resp and joins its text blocks in order. It fails
// when resp is nil, has no content, or no block carries text.
func extractText(resp *Response) (string, error) {
	if resp == nil {
		return "", invalidResponse("provider returned no response")
	}
	if len(resp.Content) == 0 {
		return "", invalidResponse("provider response has no content blocks")
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		sb.WriteString(block.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", invalidResponse("provider response has no text content")
	}
	return sb.String(), nil
}
