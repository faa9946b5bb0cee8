package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nelson-chat/internal/domain"
	"nelson-chat/internal/infra/httpclient"
)

// Fixed decoding parameters. Low temperature keeps the answer close to
// the supplied context.
const (
	generationTemperature = 0.2
	generationTopP        = 0.8
	generationTopK        = 40
	generationMaxTokens   = 2048
)

const blockMediumAndAbove = "BLOCK_MEDIUM_AND_ABOVE"

// All four safety categories block at medium and above; medical
// content must stay on the conservative side.
var safetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: blockMediumAndAbove},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: blockMediumAndAbove},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: blockMediumAndAbove},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: blockMediumAndAbove},
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string        `json:"role"`
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generator sends prompts to the Gemini generateContent endpoint and
// extracts the first candidate's first text part.
type Generator struct {
	BaseURL string
	Model   string
	apiKey  string
	Client  *http.Client
	logger  *slog.Logger
}

// NewGenerator constructs a Gemini client with a bounded call timeout.
func NewGenerator(baseURL, model, apiKey string, timeout time.Duration, logger *slog.Logger) *Generator {
	return &Generator{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		apiKey:  apiKey,
		Client:  httpclient.NewPooledClient(timeout),
		logger:  logger,
	}
}

// Generate sends the messages as one generateContent call. Single
// attempt, no retry; each failure maps to a GenerationError kind so
// the handler can log precisely while the caller sees only the
// generic fallback.
func (g *Generator) Generate(ctx context.Context, messages []domain.Message) (string, error) {
	contents := make([]content, len(messages))
	for i, m := range messages {
		contents[i] = content{
			Role:  m.Role,
			Parts: []contentPart{{Text: m.Content}},
		}
	}

	reqBody := generateRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     generationTemperature,
			TopP:            generationTopP,
			TopK:            generationTopK,
			MaxOutputTokens: generationMaxTokens,
		},
		SafetySettings: safetySettings,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", domain.NewGenerationTransportError(0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		g.logger.Error("gemini_error_response",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return "", domain.NewGenerationTransportError(resp.StatusCode, string(body), nil)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", domain.NewMalformedResponseError(fmt.Errorf("failed to decode generation response: %w", err))
	}

	// Validate-then-extract: required fields missing is a malformed
	// response, not a silent fall-through.
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.NewMalformedResponseError(fmt.Errorf("response has no candidate parts"))
	}

	text := genResp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", domain.NewEmptyAnswerError()
	}

	return text, nil
}

// Version returns the wrapped model name.
func (g *Generator) Version() string {
	return g.Model
}

var _ domain.LLMClient = (*Generator)(nil)
