package session

import (
    "testing"
    "time"

    "github.com/hperumalla-oops/asana-insights/internal/domain"
    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestReplace_SnapshotSwap(t *testing.T) {
    s := &Session{}
    assert.Equal(t, 2, s.Replace([]domain.TaskRecord{{ID: "1"}, {ID: "2"}}))
    assert.Equal(t, 1, s.Replace([]domain.TaskRecord{{ID: "3"}}))

    cur := s.Current()
    require.Len(t, cur, 1)
    assert.Equal(t, "3", cur[0].ID)
}

func TestCurrent_ReturnsCopy(t *testing.T) {
    s := &Session{}
    s.Replace([]domain.TaskRecord{{ID: "1", Name: "orig"}})

    cur := s.Current()
    cur[0].Name = "mutated"

    again := s.Current()
    assert.Equal(t, "orig", again[0].Name)
}

func TestReplace_DetachesFromCallerSlice(t *testing.T) {
    in := []domain.TaskRecord{{ID: "1", Name: "orig"}}
    s := &Session{}
    s.Replace(in)
    in[0].Name = "mutated"

    assert.Equal(t, "orig", s.Current()[0].Name)
}

func TestManager_CreateAndGet(t *testing.T) {
    m := NewManager(zerolog.Nop())
    sess := m.Create(nil)
    require.NotEmpty(t, sess.Token)

    assert.Same(t, sess, m.Get(sess.Token))
    assert.Nil(t, m.Get("unknown"))
    assert.Nil(t, m.Get(""))
}

func TestManager_TokensAreUnique(t *testing.T) {
    m := NewManager(zerolog.Nop())
    a := m.Create(nil)
    b := m.Create(nil)
    assert.NotEqual(t, a.Token, b.Token)
}

func TestManager_SweepExpiresIdleSessions(t *testing.T) {
    m := NewManager(zerolog.Nop())
    stale := m.Create(nil)
    fresh := m.Create(nil)

    stale.mu.Lock()
    stale.lastSeen = time.Now().Add(-time.Hour)
    stale.mu.Unlock()

    assert.Equal(t, 1, m.Sweep(30*time.Minute))
    assert.Nil(t, m.Get(stale.Token))
    assert.NotNil(t, m.Get(fresh.Token))
}

func TestManager_GetRefreshesIdleTimer(t *testing.T) {
    m := NewManager(zerolog.Nop())
    sess := m.Create(nil)

    sess.mu.Lock()
    sess.lastSeen = time.Now().Add(-time.Hour)
    sess.mu.Unlock()

    m.Get(sess.Token)
    assert.Equal(t, 0, m.Sweep(30*time.Minute))
}
