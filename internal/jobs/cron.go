package jobs

import (
    "time"

    "github.com/hperumalla-oops/asana-insights/internal/config"
    "github.com/robfig/cron/v3"
    "github.com/rs/zerolog"
)

type sweeper interface { Sweep(maxIdle time.Duration) int }

// Cron expires idle sessions on a schedule so abandoned credentials do not
// live for the whole process lifetime.
type Cron struct {
    cfg      config.Config
    log      zerolog.Logger
    sessions sweeper
    c        *cron.Cron
}

func NewCron(cfg config.Config, log zerolog.Logger, sessions sweeper) *Cron {
    loc, _ := time.LoadLocation(cfg.TZ)
    c := cron.New(cron.WithLocation(loc), cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)))
    cr := &Cron{cfg: cfg, log: log, sessions: sessions, c: c}
    _, _ = c.AddFunc(cfg.SessionSweepCron, cr.sweep)
    return cr
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { cr.c.Stop() }

func (cr *Cron) sweep() {
    if n := cr.sessions.Sweep(cr.cfg.SessionTTL); n > 0 {
        cr.log.Info().Int("expired", n).Msg("cron: idle sessions swept")
    }
}
