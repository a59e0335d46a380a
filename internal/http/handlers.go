package http

import (
    "encoding/json"
    "errors"
    "math/rand"
    "net/http"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/hperumalla-oops/asana-insights/internal/adapters/asana"
    "github.com/hperumalla-oops/asana-insights/internal/adapters/openai"
    "github.com/hperumalla-oops/asana-insights/internal/config"
    "github.com/hperumalla-oops/asana-insights/internal/domain"
    "github.com/hperumalla-oops/asana-insights/internal/insight"
    "github.com/hperumalla-oops/asana-insights/internal/services"
    "github.com/hperumalla-oops/asana-insights/internal/session"
    "github.com/rs/zerolog"
)

const sessionHeader = "X-Session-Token"

type Handlers struct {
    cfg      config.Config
    log      zerolog.Logger
    svc      *services.Service
    sessions *session.Manager
    llm      *openai.Client
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc *services.Service, sessions *session.Manager, llm *openai.Client) *Handlers {
    return &Handlers{cfg: cfg, log: log, svc: svc, sessions: sessions, llm: llm}
}

func (h *Handlers) Health(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Asana insights API is running"})
}

func (h *Handlers) Authenticate(c *gin.Context) {
    var req struct{ APIKey string `json:"api_key"` }
    if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.APIKey) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"detail": "api_key is required"})
        return
    }
    client := asana.NewClient(h.cfg.AsanaBaseURL, req.APIKey, h.cfg.HTTPTimeout, h.log)
    ok, reason := client.Validate(c.Request.Context())
    if !ok {
        h.log.Warn().Str("reason", reason).Msg("asana key validation failed")
        c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid API key"})
        return
    }
    sess := h.sessions.Create(client)
    c.JSON(http.StatusOK, gin.H{"message": "Authentication successful", "status": "authenticated", "token": sess.Token})
}

// RequireSession resolves the caller's session from the token header and
// stashes it on the request context.
func (h *Handlers) RequireSession(c *gin.Context) {
    sess := h.sessions.Get(c.GetHeader(sessionHeader))
    if sess == nil {
        c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated. Please authenticate with Asana API key first."})
        return
    }
    c.Set("session", sess)
    c.Next()
}

func (h *Handlers) sess(c *gin.Context) *session.Session {
    s, _ := c.MustGet("session").(*session.Session)
    return s
}

// upstreamStatus maps a read-path failure onto the inbound surface: expired
// or revoked credentials report as 401, everything else as a bad gateway.
func upstreamStatus(err error) int {
    var apiErr *asana.APIError
    if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
        return http.StatusUnauthorized
    }
    return http.StatusBadGateway
}

func (h *Handlers) Workspaces(c *gin.Context) {
    sess := h.sess(c)
    workspaces, err := h.svc.ListWorkspaces(c.Request.Context(), sess.Client)
    if err != nil {
        c.JSON(upstreamStatus(err), gin.H{"detail": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"data": workspaces})
}

func (h *Handlers) Projects(c *gin.Context) {
    sess := h.sess(c)
    projects, err := h.svc.ListProjects(c.Request.Context(), sess.Client, c.Param("workspace_id"))
    if err != nil {
        c.JSON(upstreamStatus(err), gin.H{"detail": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"data": projects})
}

func (h *Handlers) Tasks(c *gin.Context) {
    sess := h.sess(c)
    tasks, err := h.svc.ListTasks(c.Request.Context(), sess.Client, c.Param("project_id"))
    if err != nil {
        c.JSON(upstreamStatus(err), gin.H{"detail": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"data": tasks})
}

func (h *Handlers) AddTasks(c *gin.Context) {
    var tasks []domain.TaskRecord
    if err := c.ShouldBindJSON(&tasks); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"detail": "expected a list of task records"})
        return
    }
    count := h.sess(c).Replace(tasks)
    c.JSON(http.StatusOK, gin.H{"status": "ok", "count": count})
}

func (h *Handlers) SpikedInsights(c *gin.Context) {
    tasks := h.sess(c).Current()
    if len(tasks) == 0 {
        c.JSON(http.StatusOK, gin.H{"tasks": []domain.TaskRecord{}})
        return
    }
    rng := rand.New(rand.NewSource(time.Now().UnixNano()))
    updated, _ := insight.Apply(tasks, rng)
    c.JSON(http.StatusOK, gin.H{"tasks": updated})
}

// UpdateTasks accepts either a list of task records (batch write-back with
// per-task results) or a single {ID, updates} object, matching the two
// shapes the frontend sends.
func (h *Handlers) UpdateTasks(c *gin.Context) {
    raw, err := c.GetRawData()
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot read body"})
        return
    }
    sess := h.sess(c)

    var batch []domain.TaskRecord
    if err := json.Unmarshal(raw, &batch); err == nil {
        results := h.svc.PushUpdates(c.Request.Context(), sess.Client, batch)
        c.JSON(http.StatusOK, gin.H{"results": results})
        return
    }

    var single struct {
        ID      string         `json:"ID"`
        Updates map[string]any `json:"updates"`
    }
    if err := json.Unmarshal(raw, &single); err != nil || single.ID == "" {
        c.JSON(http.StatusBadRequest, gin.H{"detail": "expected a task list or {ID, updates}"})
        return
    }
    body, err := h.svc.PushSingle(c.Request.Context(), sess.Client, single.ID, single.Updates)
    if err != nil {
        c.JSON(upstreamStatus(err), gin.H{"detail": err.Error()})
        return
    }
    c.JSON(http.StatusOK, body)
}

func (h *Handlers) Chat(c *gin.Context) {
    if !h.llm.Configured() {
        c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "chat is not configured"})
        return
    }
    var req struct{ Message string `json:"message"` }
    if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"detail": "message is required"})
        return
    }
    answer, err := h.llm.Chat(c.Request.Context(), req.Message, h.sess(c).Current())
    if err != nil {
        c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
        return
    }
    c.JSON(http.StatusOK, gin.H{"answer": answer})
}
