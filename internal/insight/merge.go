package insight

import "github.com/hperumalla-oops/asana-insights/internal/domain"

// MergeNotes combines existing upstream notes with locally edited notes.
// Existing content is never dropped: the new note replaces only an empty or
// sentinel-empty old note, otherwise it is appended under a divider. Both
// the batch and single-task write-back paths go through here.
func MergeNotes(oldNotes, newNotes string) string {
    if oldNotes == "" || oldNotes == domain.EmptyNotes { return newNotes }
    if newNotes == "" { return oldNotes }
    return oldNotes + "\n---\nSpiked Insights:\n" + newNotes
}
