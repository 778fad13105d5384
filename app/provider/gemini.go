package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"modelchat/app/config"
	"net/http"
	"net/url"
	"time"

	_ "embed"
)

//go:embed system_prompt.txt
var systemPrompt string

const (
	networkFallback  = "Oops! I seem to be having a network issue or an API issue. Please try again."
	emptyFallback    = "I'm sorry, I couldn't generate a response. Please try again."
	requestTimeout   = 30 * time.Second
	generateEndpoint = "%s/models/%s:generateContent?key=%s"
)

// Gemini is the one live provider: a single-shot call to the generative
// language endpoint with search grounding enabled.
type Gemini struct {
	cfg    *config.Config
	client *http.Client
}

func NewGemini(cfg *config.Config) *Gemini {
	return &Gemini{
		cfg: cfg,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (g *Gemini) ID() ID {
	return IDGemini
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type generateRequest struct {
	Contents          []geminiContent `json:"contents"`
	Tools             []geminiTool    `json:"tools"`
	SystemInstruction geminiContent   `json:"systemInstruction"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Respond never surfaces an error to the conversation: any fault on the
// network path collapses into one of two canned fallback strings.
func (g *Gemini) Respond(ctx context.Context, text string) string {
	reply, err := g.generate(ctx, text)
	if err != nil {
		slog.Error("Gemini request failed", "error", err)
		return networkFallback
	}

	if reply == "" {
		slog.Warn("Gemini returned no candidates")
		return emptyFallback
	}

	return reply
}

func (g *Gemini) generate(ctx context.Context, text string) (string, error) {
	payload := generateRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: text}}},
		},
		Tools: []geminiTool{{}},
		SystemInstruction: geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf(generateEndpoint,
		g.cfg.Gemini.BaseURL, g.cfg.Gemini.Model, url.QueryEscape(g.cfg.Gemini.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("unexpected status %s: %s", resp.Status, string(data))
	}

	var result generateResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
