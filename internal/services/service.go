package services

import (
    "context"
    "sync"

    "github.com/hperumalla-oops/asana-insights/internal/adapters/asana"
    "github.com/hperumalla-oops/asana-insights/internal/config"
    "github.com/hperumalla-oops/asana-insights/internal/domain"
    "github.com/hperumalla-oops/asana-insights/internal/insight"
    "github.com/hperumalla-oops/asana-insights/internal/normalize"
    "github.com/rs/zerolog"
)

type AsanaClient interface {
    Workspaces(ctx context.Context) ([]asana.NamedResource, error)
    Projects(ctx context.Context, workspaceGID string) ([]asana.NamedResource, error)
    ProjectTasks(ctx context.Context, projectGID string) ([]asana.TaskStub, error)
    Task(ctx context.Context, gid string) (asana.Task, error)
    UpdateTask(ctx context.Context, gid string, fields map[string]any) (int, any, error)
}

// Service orchestrates fetch/normalize and write-back against whichever
// session's client the caller hands in. It holds no per-session state.
type Service struct {
    cfg config.Config
    log zerolog.Logger
}

func New(cfg config.Config, log zerolog.Logger) *Service {
    return &Service{cfg: cfg, log: log}
}

func (s *Service) ListWorkspaces(ctx context.Context, ac AsanaClient) ([]domain.Workspace, error) {
    res, err := ac.Workspaces(ctx)
    if err != nil { return nil, err }
    out := make([]domain.Workspace, 0, len(res))
    for _, ws := range res {
        out = append(out, domain.Workspace{WorkspaceID: ws.GID, Name: ws.Name, ResourceType: ws.ResourceType})
    }
    return out, nil
}

func (s *Service) ListProjects(ctx context.Context, ac AsanaClient, workspaceID string) ([]domain.Project, error) {
    res, err := ac.Projects(ctx, workspaceID)
    if err != nil { return nil, err }
    out := make([]domain.Project, 0, len(res))
    for _, p := range res {
        out = append(out, domain.Project{ProjectID: p.GID, Name: p.Name, ResourceType: p.ResourceType})
    }
    return out, nil
}

// ListTasks lists task gids for a project, then detail-fetches and normalizes
// each through a bounded worker pool. Results keep listing order. The call is
// all-or-nothing: the first detail failure cancels the rest and surfaces.
func (s *Service) ListTasks(ctx context.Context, ac AsanaClient, projectID string) ([]domain.TaskRecord, error) {
    stubs, err := ac.ProjectTasks(ctx, projectID)
    if err != nil { return nil, err }
    if len(stubs) == 0 { return []domain.TaskRecord{}, nil }

    out := make([]domain.TaskRecord, len(stubs))
    workers := s.cfg.WorkersAsana
    if workers <= 0 { workers = 6 }
    if workers > len(stubs) { workers = len(stubs) }

    ctx, cancel := context.WithCancel(ctx)
    defer cancel()
    jobs := make(chan int)
    var wg sync.WaitGroup
    var mu sync.Mutex
    var firstErr error
    for w := 0; w < workers; w++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            for i := range jobs {
                raw, err := ac.Task(ctx, stubs[i].GID)
                if err != nil {
                    mu.Lock()
                    if firstErr == nil { firstErr = err; cancel() }
                    mu.Unlock()
                    continue
                }
                out[i] = normalize.Task(raw, stubs[i].GID)
            }
        }()
    }
    for i := range stubs {
        select {
        case jobs <- i:
        case <-ctx.Done():
        }
    }
    close(jobs)
    wg.Wait()
    if firstErr != nil { return nil, firstErr }
    return out, nil
}

// PushUpdates writes edited tasks back upstream. One task's failure never
// aborts the batch; every task gets a MergeResult in input order.
func (s *Service) PushUpdates(ctx context.Context, ac AsanaClient, tasks []domain.TaskRecord) []domain.MergeResult {
    results := make([]domain.MergeResult, 0, len(tasks))
    for _, t := range tasks {
        results = append(results, s.pushOne(ctx, ac, t))
    }
    return results
}

func (s *Service) pushOne(ctx context.Context, ac AsanaClient, t domain.TaskRecord) domain.MergeResult {
    // Fetch current notes first so the merge never clobbers upstream edits.
    // A failed fetch degrades to merging against empty, it does not abort.
    oldNotes := ""
    if cur, err := ac.Task(ctx, t.ID); err == nil {
        oldNotes = cur.Notes
    } else {
        s.log.Warn().Err(err).Str("task", t.ID).Msg("pre-update fetch failed; merging against empty notes")
    }

    fields := map[string]any{
        "notes": insight.MergeNotes(oldNotes, t.Notes),
        "name":  t.Name,
    }
    // Sentinel placeholders are local display values, not valid upstream
    // field values; leave those fields untouched on the Asana side.
    if t.DueDate != "" && t.DueDate != domain.NoDueDate { fields["due_on"] = t.DueDate }
    if t.Assignee != "" && t.Assignee != domain.NoAssignee { fields["assignee"] = t.Assignee }

    status, body, err := ac.UpdateTask(ctx, t.ID, fields)
    if err != nil {
        return domain.MergeResult{TaskID: t.ID, Status: 0, Response: err.Error()}
    }
    return domain.MergeResult{TaskID: t.ID, Status: status, Response: body}
}

// PushSingle is the one-task variant: same pre-fetch and merge rule, but the
// caller supplies an explicit updates map and receives the raw upstream
// response instead of a MergeResult.
func (s *Service) PushSingle(ctx context.Context, ac AsanaClient, taskID string, updates map[string]any) (any, error) {
    oldNotes := ""
    if cur, err := ac.Task(ctx, taskID); err == nil {
        oldNotes = cur.Notes
    } else {
        s.log.Warn().Err(err).Str("task", taskID).Msg("pre-update fetch failed; merging against empty notes")
    }
    newNotes, _ := updates["notes"].(string)
    merged := updates
    if merged == nil { merged = map[string]any{} }
    merged["notes"] = insight.MergeNotes(oldNotes, newNotes)

    _, body, err := ac.UpdateTask(ctx, taskID, merged)
    if err != nil { return nil, err }
    return body, nil
}
