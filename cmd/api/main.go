package main

import (
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/hperumalla-oops/asana-insights/internal/adapters/openai"
    "github.com/hperumalla-oops/asana-insights/internal/config"
    apihttp "github.com/hperumalla-oops/asana-insights/internal/http"
    "github.com/hperumalla-oops/asana-insights/internal/jobs"
    "github.com/hperumalla-oops/asana-insights/internal/logger"
    "github.com/hperumalla-oops/asana-insights/internal/services"
    "github.com/hperumalla-oops/asana-insights/internal/session"
)

func main() {
    cfg := config.Load()
    log := logger.New(cfg)

    // Adapters and state
    llm := openai.NewClient(cfg, log)
    sessions := session.NewManager(log)

    // Services
    svc := services.New(cfg, log)

    // HTTP server (Gin)
    router := apihttp.NewRouter(cfg, log, svc, sessions, llm)

    // Cron
    cron := jobs.NewCron(cfg, log, sessions)
    cron.Start()
    defer cron.Stop()

    // graceful shutdown
    errCh := make(chan error, 1)
    go func() { errCh <- router.Run(cfg.HTTPAddr) }()

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil { log.Error().Err(err).Msg("http server error") }
    }

    time.Sleep(500 * time.Millisecond)
}
