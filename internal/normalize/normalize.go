package normalize

import (
    "strings"

    "github.com/hperumalla-oops/asana-insights/internal/adapters/asana"
    "github.com/hperumalla-oops/asana-insights/internal/domain"
)

// Task flattens a raw Asana task into the canonical record. Pure and total:
// missing optional fields resolve to the documented sentinels, never to a
// missing key. The gid is passed separately so the identifier survives a
// partial or malformed payload.
func Task(raw asana.Task, gid string) domain.TaskRecord {
    fields := map[string]string{}
    for _, f := range raw.CustomFields {
        v := ""
        if f.DisplayValue != nil { v = *f.DisplayValue }
        // last write wins on duplicate field names
        fields[f.Name] = v
    }

    assignee := domain.NoAssignee
    if raw.Assignee != nil && raw.Assignee.Name != "" { assignee = raw.Assignee.Name }

    var followers *string
    if len(raw.Followers) > 0 {
        names := make([]string, 0, len(raw.Followers))
        for _, f := range raw.Followers { names = append(names, f.Name) }
        joined := strings.Join(names, ", ")
        followers = &joined
    }

    rec := domain.TaskRecord{
        Name:      raw.Name,
        ID:        gid,
        Assignee:  assignee,
        Priority:  fieldOr(fields, "Priority", domain.NotSet),
        Status:    fieldOr(fields, "Status", domain.NotSet),
        DueDate:   domain.NoDueDate,
        Followers: followers,
        Notes:     domain.EmptyNotes,
        Link:      raw.PermalinkURL,
    }
    if raw.DueOn != nil && *raw.DueOn != "" { rec.DueDate = *raw.DueOn }
    if raw.Notes != "" { rec.Notes = raw.Notes }
    return rec
}

func fieldOr(m map[string]string, key, def string) string {
    if v, ok := m[key]; ok && v != "" { return v }
    return def
}
