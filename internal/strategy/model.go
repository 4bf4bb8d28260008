package strategy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/1ureka/salvo/internal/board"
)

// DefaultResponsesURL is the OpenAI Responses endpoint.
const DefaultResponsesURL = "https://api.openai.com/v1/responses"

// ModelConfig configures the language model strategy.
type ModelConfig struct {
	ResponsesURL string
	APIKey       string
	Model        string
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// Model asks a hosted language model for the next target. Replies that do
// not contain a coordinate token resolve to Fallback.
type Model struct {
	cfg ModelConfig
}

// NewModel creates a Model strategy, filling in the default endpoint and
// HTTP client.
func NewModel(cfg ModelConfig) *Model {
	if strings.TrimSpace(cfg.ResponsesURL) == "" {
		cfg.ResponsesURL = DefaultResponsesURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Model{cfg: cfg}
}

const promptTemplate = `You're playing a game of battleship on a %dx%d grid.
You're supposed to identify the next move that's reasonable for you to win this game.
DO NOT create any code.
You MUST purely provide a tactically sensible move as the output of this prompt.
I am going to provide the list of past moves to you and you need to decide on the next move to play.
If no previous moves have been played, just attack a random field in the grid.
The past moves have been the following: (%s).
You MUST ONLY return the next field in the form of e.g. 'A1', 'B2', etc. and nothing else!!
This output will be parsed so it's mandatory to NOT INCLUDE ANYTHING EXCEPT THE COORDINATE!!!
(no comments, no formatting, NOTHING)`

// Prompt builds the model input for a size×size grid and the past attacks.
func Prompt(size int, past []string) string {
	return fmt.Sprintf(promptTemplate, size, size, strings.Join(past, ","))
}

func (m *Model) SuggestNextAttack(ctx context.Context, size int, past []string) (board.Coordinate, error) {
	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}

	output, err := m.invoke(ctx, Prompt(size, past))
	if err != nil {
		return board.Coordinate{}, err
	}
	return ParseSuggestion(output), nil
}

func (m *Model) invoke(ctx context.Context, prompt string) (string, error) {
	apiKey := strings.TrimSpace(m.cfg.APIKey)
	model := strings.TrimSpace(m.cfg.Model)
	if apiKey == "" {
		return "", fmt.Errorf("api key is required")
	}
	if model == "" {
		return "", fmt.Errorf("model is required")
	}

	requestBody, err := json.Marshal(map[string]any{
		"model": model,
		"input": prompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal model request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.ResponsesURL, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := m.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("model request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}

	if text := strings.TrimSpace(payload.OutputText); text != "" {
		return text, nil
	}
	for _, item := range payload.Output {
		for _, content := range item.Content {
			if text := strings.TrimSpace(content.Text); text != "" {
				return text, nil
			}
		}
	}
	return "", nil
}
