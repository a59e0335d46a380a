package openai

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "strings"

    "github.com/hperumalla-oops/asana-insights/internal/config"
    "github.com/hperumalla-oops/asana-insights/internal/domain"
    "github.com/rs/zerolog"
)

// ErrNotConfigured means no API key was provided; the chat surface is
// optional and the core pipeline never depends on it.
var ErrNotConfigured = errors.New("openai: missing key")

type Client struct {
    key   string
    model string
    http  *http.Client
    log   zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    return &Client{ key: cfg.OpenAIKey, model: cfg.OpenAIModel, http: &http.Client{ Timeout: cfg.OpenAITimeout }, log: log }
}

func (c *Client) Configured() bool { return strings.TrimSpace(c.key) != "" }

// Chat answers a question about the caller's current working set.
func (c *Client) Chat(ctx context.Context, question string, tasks []domain.TaskRecord) (string, error) {
    if !c.Configured() { return "", ErrNotConfigured }
    taskJSON, _ := json.Marshal(tasks)
    body := map[string]any{
        "model": c.model,
        "messages": []map[string]string{
            {"role":"system","content":"You are a project assistant. Answer questions about the user's Asana tasks using only the task data provided. Be concise."},
            {"role":"user","content": fmt.Sprintf("Tasks:\n%s\n\nQuestion: %s", taskJSON, question)},
        },
        "temperature": 0.2,
    }
    b, _ := json.Marshal(body)
    req, _ := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", bytes.NewReader(b))
    req.Header.Set("Authorization", "Bearer "+c.key)
    req.Header.Set("Content-Type", "application/json")
    resp, err := c.http.Do(req)
    if err != nil { return "", err }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 { return "", fmt.Errorf("openai status=%d", resp.StatusCode) }
    var out struct{ Choices []struct{ Message struct{ Content string `json:"content"` } `json:"message"` } `json:"choices"` }
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return "", err }
    if len(out.Choices) == 0 { return "", errors.New("openai: no choices") }
    return out.Choices[0].Message.Content, nil
}
