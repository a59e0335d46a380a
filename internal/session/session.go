package session

import (
    "crypto/rand"
    "encoding/hex"
    "sync"
    "time"

    "github.com/hperumalla-oops/asana-insights/internal/adapters/asana"
    "github.com/hperumalla-oops/asana-insights/internal/domain"
    "github.com/rs/zerolog"
)

// Session owns one authenticated upstream client and one working set. Every
// core call receives it explicitly; there is no process-global credential.
type Session struct {
    Token  string
    Client *asana.Client

    mu       sync.Mutex
    tasks    []domain.TaskRecord
    lastSeen time.Time
}

// Replace swaps the entire working set for a new snapshot and returns the
// accepted count. There is no per-record upsert.
func (s *Session) Replace(tasks []domain.TaskRecord) int {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.tasks = append([]domain.TaskRecord(nil), tasks...)
    return len(s.tasks)
}

// Current returns a copy of the working-set snapshot; callers may mutate the
// returned slice freely.
func (s *Session) Current() []domain.TaskRecord {
    s.mu.Lock()
    defer s.mu.Unlock()
    return append([]domain.TaskRecord(nil), s.tasks...)
}

func (s *Session) touch() {
    s.mu.Lock()
    s.lastSeen = time.Now()
    s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
    s.mu.Lock()
    defer s.mu.Unlock()
    return now.Sub(s.lastSeen)
}

// Manager is the registry of live sessions, keyed by opaque token.
type Manager struct {
    mu      sync.Mutex
    byToken map[string]*Session
    log     zerolog.Logger
}

func NewManager(log zerolog.Logger) *Manager {
    return &Manager{byToken: map[string]*Session{}, log: log}
}

// Create registers a new session around a validated client and issues its
// token. Re-authentication creates a fresh session rather than swapping the
// credential under a live one.
func (m *Manager) Create(client *asana.Client) *Session {
    s := &Session{Token: newToken(), Client: client, lastSeen: time.Now()}
    m.mu.Lock()
    m.byToken[s.Token] = s
    m.mu.Unlock()
    m.log.Info().Msg("session created")
    return s
}

// Get returns the session for token, refreshing its idle timer, or nil.
func (m *Manager) Get(token string) *Session {
    if token == "" { return nil }
    m.mu.Lock()
    s := m.byToken[token]
    m.mu.Unlock()
    if s != nil { s.touch() }
    return s
}

// Sweep drops sessions idle longer than maxIdle and returns how many went.
func (m *Manager) Sweep(maxIdle time.Duration) int {
    now := time.Now()
    m.mu.Lock()
    defer m.mu.Unlock()
    n := 0
    for token, s := range m.byToken {
        if s.idleSince(now) > maxIdle {
            delete(m.byToken, token)
            n++
        }
    }
    return n
}

func newToken() string {
    b := make([]byte, 24)
    _, _ = rand.Read(b)
    return hex.EncodeToString(b)
}
