// Package ollama implements the model collaborator against a local Ollama
// server's /api/generate endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kiranalabs/kirana/pkg/llm"
	"github.com/kiranalabs/kirana/pkg/resilience"
)

type Adapter struct {
	Model       string
	BaseURL     string
	Client      *http.Client
	Temperature float64
	NumPredict  int
}

func NewAdapter(model, baseURL string) *Adapter {
	if model == "" {
		model = "llama3.2:1b"
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &Adapter{
		Model:       model,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Client:      &http.Client{Timeout: 120 * time.Second},
		Temperature: 0.3,
		NumPredict:  150,
	}
}

func (a *Adapter) Name() string { return "ollama" }

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (a *Adapter) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	payload := generateRequest{
		Model:  a.Model,
		Prompt: a.buildPrompt(req),
		Stream: false,
		Options: map[string]any{
			"temperature": a.Temperature,
			"num_predict": a.NumPredict,
			"stop":        []string{"\nuser:", "\nassistant:", "user:"},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return llm.Response{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return llm.Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := a.client().Do(httpReq)
	if err != nil {
		return llm.Response{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		raw, _ := io.ReadAll(resp.Body)
		return llm.Response{}, resilience.RateLimitError{Provider: "ollama", Message: string(raw)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return llm.Response{}, fmt.Errorf("ollama status %d: %s", resp.StatusCode, string(raw))
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return llm.Response{}, err
	}
	text := stripRolePrefix(strings.TrimSpace(out.Response))
	if text == "" {
		return llm.Response{}, errors.New("ollama returned empty response")
	}
	return llm.Response{Text: text}, nil
}

// buildPrompt flattens directives and conversation history into the single
// prompt string the generate endpoint expects.
func (a *Adapter) buildPrompt(req llm.Request) string {
	var b strings.Builder
	b.WriteString(req.System)
	b.WriteString("\n\n")
	for _, msg := range req.Messages {
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString("assistant:")
	return b.String()
}

func stripRolePrefix(text string) string {
	for _, prefix := range []string{"assistant:", "Assistant:", "ASSISTANT:"} {
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(text, prefix))
		}
	}
	return text
}

func (a *Adapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

var _ llm.Adapter = (*Adapter)(nil)
