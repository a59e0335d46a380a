package asana

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"

    "github.com/rs/zerolog"
)

// ErrUpstreamUnavailable wraps network-level failures reaching the Asana API.
var ErrUpstreamUnavailable = errors.New("asana: upstream unavailable")

// APIError is a non-2xx response from the Asana API.
type APIError struct {
    Status int
    Body   string
}

func (e *APIError) Error() string { return fmt.Sprintf("asana api status=%d body=%s", e.Status, e.Body) }

// Client issues bearer-authenticated calls against one Asana credential.
// One client per session; replacing the credential means a new client.
type Client struct {
    baseURL string
    token   string
    http    *http.Client
    log     zerolog.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log zerolog.Logger) *Client {
    return &Client{
        baseURL: strings.TrimRight(baseURL, "/"),
        token:   token,
        http:    &http.Client{ Timeout: timeout },
        log:     log,
    }
}

func (c *Client) apiURL(path string, q url.Values) string {
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := c.baseURL + path
    if len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

func (c *Client) do(ctx context.Context, method, u string, body any) (*http.Response, error) {
    var r io.Reader
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil { return nil, err }
        r = bytes.NewReader(b)
    }
    req, err := http.NewRequestWithContext(ctx, method, u, r)
    if err != nil { return nil, err }
    if body != nil { req.Header.Set("Content-Type", "application/json") }
    req.Header.Set("Authorization", "Bearer "+c.token)
    resp, err := c.http.Do(req)
    if err != nil { return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err) }
    return resp, nil
}

// getJSON decodes a 2xx response body into out and turns anything else into
// an *APIError carrying the upstream status and trimmed body.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
    resp, err := c.do(ctx, http.MethodGet, c.apiURL(path, q), nil)
    if err != nil { return err }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 {
        b, _ := io.ReadAll(resp.Body)
        return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
    }
    return json.NewDecoder(resp.Body).Decode(out)
}

// Validate performs a lightweight identity call against /users/me. It never
// returns an error: any failure, network included, reports as not-ok with a
// debug reason.
func (c *Client) Validate(ctx context.Context) (bool, string) {
    resp, err := c.do(ctx, http.MethodGet, c.apiURL("/users/me", nil), nil)
    if err != nil { return false, err.Error() }
    defer resp.Body.Close()
    _, _ = io.Copy(io.Discard, resp.Body)
    if resp.StatusCode != http.StatusOK {
        return false, fmt.Sprintf("users/me status=%d", resp.StatusCode)
    }
    return true, ""
}

func (c *Client) Workspaces(ctx context.Context) ([]NamedResource, error) {
    var out struct{ Data []NamedResource `json:"data"` }
    if err := c.getJSON(ctx, "/workspaces", nil, &out); err != nil { return nil, err }
    return out.Data, nil
}

func (c *Client) Projects(ctx context.Context, workspaceGID string) ([]NamedResource, error) {
    if workspaceGID == "" { return nil, errors.New("asana: empty workspace gid") }
    q := url.Values{}
    q.Set("workspace", workspaceGID)
    var out struct{ Data []NamedResource `json:"data"` }
    if err := c.getJSON(ctx, "/projects", q, &out); err != nil { return nil, err }
    return out.Data, nil
}

func (c *Client) ProjectTasks(ctx context.Context, projectGID string) ([]TaskStub, error) {
    if projectGID == "" { return nil, errors.New("asana: empty project gid") }
    var out struct{ Data []TaskStub `json:"data"` }
    if err := c.getJSON(ctx, "/projects/"+url.PathEscape(projectGID)+"/tasks", nil, &out); err != nil { return nil, err }
    return out.Data, nil
}

func (c *Client) Task(ctx context.Context, gid string) (Task, error) {
    if gid == "" { return Task{}, errors.New("asana: empty task gid") }
    var out struct{ Data Task `json:"data"` }
    if err := c.getJSON(ctx, "/tasks/"+url.PathEscape(gid), nil, &out); err != nil { return Task{}, err }
    return out.Data, nil
}

// UpdateTask PUTs fields for one task wrapped in the {"data": ...} envelope.
// The HTTP status and body are returned even on non-2xx so write-back can
// record per-task outcomes; err is non-nil only when the upstream was never
// reached. A 2xx body decodes to the response envelope, anything else comes
// back as the raw error text.
func (c *Client) UpdateTask(ctx context.Context, gid string, fields map[string]any) (int, any, error) {
    if gid == "" { return 0, nil, errors.New("asana: empty task gid") }
    u := c.apiURL("/tasks/"+url.PathEscape(gid), nil)
    resp, err := c.do(ctx, http.MethodPut, u, map[string]any{"data": fields})
    if err != nil { return 0, nil, err }
    defer resp.Body.Close()
    b, _ := io.ReadAll(resp.Body)
    if resp.StatusCode >= 300 {
        return resp.StatusCode, strings.TrimSpace(string(b)), nil
    }
    var decoded any
    if err := json.Unmarshal(b, &decoded); err != nil {
        return resp.StatusCode, strings.TrimSpace(string(b)), nil
    }
    return resp.StatusCode, decoded, nil
}
