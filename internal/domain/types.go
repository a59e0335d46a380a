package domain

// Sentinels baked into the canonical task shape. Downstream logic keys off
// these exact strings, so they are constants rather than conventions.
const (
    NoAssignee = "Unassigned"
    NotSet     = "Not set"
    NoDueDate  = "No due date"
    EmptyNotes = "(empty)"
)

type Workspace struct {
    WorkspaceID  string `json:"workspace_id"`
    Name         string `json:"name"`
    ResourceType string `json:"resource_type"`
}

type Project struct {
    ProjectID    string `json:"project_id"`
    Name         string `json:"name"`
    ResourceType string `json:"resource_type"`
}

// TaskRecord is the normalized shape every downstream component operates on.
// JSON keys match what the frontend expects. Every field is always present;
// absence upstream is represented by the sentinels above. Followers is nil
// when the task has none, which is distinct from an empty string.
type TaskRecord struct {
    Name      string  `json:"Name"`
    ID        string  `json:"ID"`
    Assignee  string  `json:"Assignee"`
    Priority  string  `json:"Priority"`
    Status    string  `json:"Status"`
    DueDate   string  `json:"Due Date"`
    Followers *string `json:"Followers"`
    Notes     string  `json:"Notes"`
    Link      string  `json:"Link"`
}

// MergeResult is the per-task outcome of one write-back attempt. Status 0
// means the update never reached the upstream (network failure).
type MergeResult struct {
    TaskID   string `json:"task_id"`
    Status   int    `json:"status"`
    Response any    `json:"response"`
}
