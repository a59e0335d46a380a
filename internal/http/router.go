package http

import (
    "github.com/gin-gonic/gin"
    "github.com/hperumalla-oops/asana-insights/internal/adapters/openai"
    "github.com/hperumalla-oops/asana-insights/internal/config"
    "github.com/hperumalla-oops/asana-insights/internal/services"
    "github.com/hperumalla-oops/asana-insights/internal/session"
    "github.com/rs/zerolog"
)

func NewRouter(cfg config.Config, log zerolog.Logger, svc *services.Service, sessions *session.Manager, llm *openai.Client) *gin.Engine {
    if cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(func(c *gin.Context){
        c.Next()
        log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
    })

    h := NewHandlers(cfg, log, svc, sessions, llm)

    r.GET("/health", h.Health)
    r.POST("/api/asana/auth", h.Authenticate)

    authed := r.Group("/api/asana", h.RequireSession)
    authed.GET("/workspaces", h.Workspaces)
    authed.GET("/projects/:workspace_id", h.Projects)
    authed.GET("/tasks/:project_id", h.Tasks)
    authed.POST("/add-tasks", h.AddTasks)
    authed.GET("/spiked-insights", h.SpikedInsights)
    authed.POST("/update-tasks", h.UpdateTasks)
    authed.POST("/chat", h.Chat)

    return r
}
