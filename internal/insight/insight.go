// Package insight produces short AI "vibe check" blurbs for journal entries.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fixed replies shown instead of a generated insight. The feature must
// never block journaling, so failures degrade to one of these strings.
const (
	MsgNoKey      = "AI key missing 🤖"
	MsgEmptyEntry = "Nothing to vibe check yet ✍️"
	MsgFailure    = "Brain freeze 🥶 Try again later."
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

const model = "gemini-2.5-flash"

const promptTemplate = `You are a trendy, supportive, and slightly chaotic Gen Z bestie.
Read this journal entry and give a 1-2 sentence "vibe check" or supportive insight.
Use slang (like "slay", "bet", "no cap", "main character energy") and emojis appropriately but don't overdo it to the point of cringe.
Be concise.

Journal Entry: %q`

// Generator produces an insight for journal entry text.
type Generator interface {
	// VibeCheck never fails; on any problem it returns a fixed fallback string.
	VibeCheck(ctx context.Context, text string) string
}

// Gemini calls the Google Generative Language REST API.
type Gemini struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// Option configures a Gemini client.
type Option func(*Gemini)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(g *Gemini) { g.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gemini) { g.httpc = c }
}

// NewGemini constructs a Gemini generator. An empty apiKey is allowed;
// VibeCheck then always answers with MsgNoKey.
func NewGemini(apiKey string, log *zap.Logger, opts ...Option) *Gemini {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Gemini{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// VibeCheck asks the model for a short reaction to the entry text.
func (g *Gemini) VibeCheck(ctx context.Context, text string) string {
	if g.apiKey == "" {
		return MsgNoKey
	}
	if strings.TrimSpace(text) == "" {
		return MsgEmptyEntry
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(promptTemplate, text)}}}},
	})
	if err != nil {
		g.log.Warn("insight request encode", zap.Error(err))
		return MsgFailure
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		g.log.Warn("insight request build", zap.Error(err))
		return MsgFailure
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpc.Do(req)
	if err != nil {
		g.log.Warn("insight request", zap.Error(err))
		return MsgFailure
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warn("insight response", zap.Int("status", resp.StatusCode))
		return MsgFailure
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		g.log.Warn("insight response decode", zap.Error(err))
		return MsgFailure
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		g.log.Warn("insight response empty")
		return MsgFailure
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}
