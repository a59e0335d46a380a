package insight

import (
    "fmt"
    "math/rand"
    "time"

    "github.com/hperumalla-oops/asana-insights/internal/domain"
)

const dateLayout = "2006-01-02"

var (
    priorities = []string{"Low", "Medium", "High"}
    statuses   = []string{"Off track", "At risk", "On track"}
)

// Shift reports what happened to a record's due date during Apply. Parse
// failures are left unchanged rather than raised; the marker keeps that
// decision visible to callers and tests.
type Shift int

const (
    ShiftNone     Shift = iota // no due date set
    ShiftApplied               // date advanced
    ShiftUnparsed              // value was not a calendar date, left unchanged
)

// Apply returns a derived copy of tasks with synthetic suggestion mutations:
// due date pushed forward 1-5 days, priority and status redrawn from fixed
// sets, notes replaced with a templated suggestion. The input is never
// mutated. The returned shifts are index-aligned with the output.
func Apply(tasks []domain.TaskRecord, rng *rand.Rand) ([]domain.TaskRecord, []Shift) {
    out := make([]domain.TaskRecord, 0, len(tasks))
    shifts := make([]Shift, 0, len(tasks))
    for _, t := range tasks {
        shift := ShiftNone
        if t.DueDate != domain.NoDueDate {
            if d, err := time.Parse(dateLayout, t.DueDate); err == nil {
                t.DueDate = d.AddDate(0, 0, 1+rng.Intn(5)).Format(dateLayout)
                shift = ShiftApplied
            } else {
                shift = ShiftUnparsed
            }
        }
        t.Priority = priorities[rng.Intn(len(priorities))]
        t.Status = statuses[rng.Intn(len(statuses))]
        t.Notes = fmt.Sprintf("Suggested update for %s", t.Name)
        out = append(out, t)
        shifts = append(shifts, shift)
    }
    return out, shifts
}
