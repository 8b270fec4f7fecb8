package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

const (
	messagesPath = "/v1/messages"
	apiVersion   = "2023-06-01"
	model        = "claude-3-haiku-20240307"
	maxTokens    = 1024
)

const adviceSystemPrompt = `You are a veterinary and animal-science assistant specialised in beef and dairy cattle.
Help the farmer with handling, health, nutrition and analysis of farm data.
Answer technically but in plain language, using Markdown lists and bold text where useful.
If the question involves a serious diagnosis, always recommend an in-person veterinary visit.`

const visionSystemPrompt = `You analyse photos of cattle. Reply ONLY with a JSON object:
{"breed": string, "estimatedWeight": number, "bodyConditionScore": string, "healthNotes": string}
Use the breed names Nelore, Angus, Brahman, Girolando or Holandes when possible. Omit fields you cannot infer.`

// ErrEmptyResponse is returned when the API answers without any text content.
var ErrEmptyResponse = errors.New("empty response from ai")

// Client is the assistant oracle: free-text advice and image analysis.
type Client interface {
	Advise(ctx context.Context, query, farmContext string) (string, error)
	AnalyzeImage(ctx context.Context, mediaType, base64Data string) (models.VisionResult, error)
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client against baseURL.
func NewClient(apiKey, baseURL string) Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func textBlock(text string) contentBlock {
	return contentBlock{Type: "text", Text: text}
}

func (c *anthropicClient) send(ctx context.Context, req messageRequest) (string, error) {
	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&respBody).
		Post(messagesPath)
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", ErrEmptyResponse
	}
	return respBody.Content[0].Text, nil
}

// Advise answers a free-text question, optionally grounded in a description of the
// farm or animal.
func (c *anthropicClient) Advise(ctx context.Context, query, farmContext string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query must not be empty", models.ErrInvalidArgument)
	}
	prompt := query
	if farmContext != "" {
		prompt = fmt.Sprintf("Farm/animal context: %s\n\nFarmer's question: %s", farmContext, query)
	}

	return c.send(ctx, messageRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      adviceSystemPrompt,
		Temperature: 0.4,
		Messages:    []message{{Role: "user", Content: []contentBlock{textBlock(prompt)}}},
	})
}

// AnalyzeImage asks for breed, weight and condition estimates from a base64 photo.
func (c *anthropicClient) AnalyzeImage(ctx context.Context, mediaType, base64Data string) (models.VisionResult, error) {
	if base64Data == "" {
		return models.VisionResult{}, fmt.Errorf("%w: image must not be empty", models.ErrInvalidArgument)
	}
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	text, err := c.send(ctx, messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    visionSystemPrompt,
		Messages: []message{
			{Role: "user", Content: []contentBlock{
				{Type: "image", Source: &imageSource{Type: "base64", MediaType: mediaType, Data: base64Data}},
				textBlock("Analyse this animal."),
			}},
			// Prefill the assistant response to force JSON
			{Role: "assistant", Content: []contentBlock{textBlock("{")}},
		},
	})
	if err != nil {
		return models.VisionResult{}, err
	}

	// Reconstruct the full JSON since we prefilled the opening brace
	raw := cleanJSON(text)
	if !strings.HasPrefix(raw, "{") {
		raw = "{" + raw
	}

	var result models.VisionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return models.VisionResult{}, fmt.Errorf("failed to unmarshal ai response: %w", err)
	}
	return result, nil
}

// cleanJSON strips markdown code fences the model sometimes wraps JSON in.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
