package asana

// Raw resource payloads as the Asana API returns them, decoded once at this
// boundary. Optional fields are pointers so the normalizer can tell absent
// from empty.

type UserRef struct {
    GID  string `json:"gid"`
    Name string `json:"name"`
}

type CustomField struct {
    Name         string  `json:"name"`
    DisplayValue *string `json:"display_value"`
}

type Task struct {
    GID          string        `json:"gid"`
    Name         string        `json:"name"`
    Notes        string        `json:"notes"`
    DueOn        *string       `json:"due_on"`
    PermalinkURL string        `json:"permalink_url"`
    Assignee     *UserRef      `json:"assignee"`
    Followers    []UserRef     `json:"followers"`
    CustomFields []CustomField `json:"custom_fields"`
}

// TaskStub is the compact shape returned by project task listings; the full
// record requires a per-gid detail fetch.
type TaskStub struct {
    GID string `json:"gid"`
}

// NamedResource covers workspaces and projects, which share one shape.
type NamedResource struct {
    GID          string `json:"gid"`
    Name         string `json:"name"`
    ResourceType string `json:"resource_type"`
}
