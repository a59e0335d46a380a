package asana

import (
    "context"
    "errors"
    "io"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
    return NewClient(url, "secret-token", 2*time.Second, zerolog.Nop())
}

func TestValidate_OK(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "/users/me", r.URL.Path)
        assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
        w.Write([]byte(`{"data":{"gid":"me"}}`))
    }))
    defer srv.Close()

    ok, reason := testClient(srv.URL).Validate(context.Background())
    assert.True(t, ok)
    assert.Empty(t, reason)
}

func TestValidate_NonOKStatus(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusUnauthorized)
    }))
    defer srv.Close()

    ok, reason := testClient(srv.URL).Validate(context.Background())
    assert.False(t, ok)
    assert.Contains(t, reason, "401")
}

func TestValidate_NetworkFailureNeverPanics(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
    srv.Close() // connection refused from here on

    ok, reason := testClient(srv.URL).Validate(context.Background())
    assert.False(t, ok)
    assert.NotEmpty(t, reason)
}

func TestWorkspaces_DecodesEnvelope(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "/workspaces", r.URL.Path)
        w.Write([]byte(`{"data":[{"gid":"w1","name":"Acme","resource_type":"workspace"}]}`))
    }))
    defer srv.Close()

    got, err := testClient(srv.URL).Workspaces(context.Background())
    require.NoError(t, err)
    require.Len(t, got, 1)
    assert.Equal(t, NamedResource{GID: "w1", Name: "Acme", ResourceType: "workspace"}, got[0])
}

func TestProjects_ScopesByWorkspaceParam(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "/projects", r.URL.Path)
        assert.Equal(t, "w1", r.URL.Query().Get("workspace"))
        w.Write([]byte(`{"data":[{"gid":"p1","name":"Roadmap","resource_type":"project"}]}`))
    }))
    defer srv.Close()

    got, err := testClient(srv.URL).Projects(context.Background(), "w1")
    require.NoError(t, err)
    require.Len(t, got, 1)
    assert.Equal(t, "p1", got[0].GID)
}

func TestGet_NonTwoHundredIsAPIError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusTooManyRequests)
        w.Write([]byte(`{"errors":[{"message":"rate limited"}]}`))
    }))
    defer srv.Close()

    _, err := testClient(srv.URL).Task(context.Background(), "t1")
    var apiErr *APIError
    require.ErrorAs(t, err, &apiErr)
    assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
    assert.Contains(t, apiErr.Body, "rate limited")
}

func TestGet_NetworkFailureWrapsSentinel(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
    srv.Close()

    _, err := testClient(srv.URL).Workspaces(context.Background())
    assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
}

func TestUpdateTask_WrapsFieldsInDataEnvelope(t *testing.T) {
    var gotBody string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, http.MethodPut, r.Method)
        assert.Equal(t, "/tasks/t1", r.URL.Path)
        b, _ := io.ReadAll(r.Body)
        gotBody = string(b)
        w.Write([]byte(`{"data":{"gid":"t1","notes":"merged"}}`))
    }))
    defer srv.Close()

    status, body, err := testClient(srv.URL).UpdateTask(context.Background(), "t1", map[string]any{"notes": "merged"})
    require.NoError(t, err)
    assert.Equal(t, http.StatusOK, status)
    assert.Contains(t, gotBody, `"data"`)
    assert.Contains(t, gotBody, `"notes":"merged"`)

    m, ok := body.(map[string]any)
    require.True(t, ok)
    assert.NotNil(t, m["data"])
}

func TestUpdateTask_NonTwoHundredReturnsStatusAndText(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusBadRequest)
        w.Write([]byte(`{"errors":[{"message":"due_on: Not a valid date"}]}`))
    }))
    defer srv.Close()

    status, body, err := testClient(srv.URL).UpdateTask(context.Background(), "t1", map[string]any{"due_on": "nope"})
    require.NoError(t, err)
    assert.Equal(t, http.StatusBadRequest, status)
    text, ok := body.(string)
    require.True(t, ok)
    assert.Contains(t, text, "Not a valid date")
}
