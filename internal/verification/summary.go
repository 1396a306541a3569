// Package verification derives a teacher's verification state and profile
// completeness from their document rows. Nothing here is cached or persisted
// except the completeness score, which callers store on save.
package verification

import (
	"github.com/temped/temped-api/internal/domain"
)

// SummaryEntry describes one required document type.
type SummaryEntry struct {
	Type        domain.DocumentType     `json:"type"`
	Label       string                  `json:"label"`
	HasApproved bool                    `json:"has_approved"`
	HasPending  bool                    `json:"has_pending"`
	Latest      *domain.TeacherDocument `json:"latest,omitempty"`
	// LatestRejection is only set when the type has neither an approved nor a
	// pending document, i.e. the teacher has to resubmit.
	LatestRejection *domain.TeacherDocument `json:"latest_rejection,omitempty"`
}

// Summarize returns exactly one entry per required type, in display order.
func Summarize(docs []domain.TeacherDocument) []SummaryEntry {
	types := domain.RequiredDocumentTypes()
	out := make([]SummaryEntry, 0, len(types))

	for _, t := range types {
		entry := SummaryEntry{Type: t, Label: t.Label()}
		var rejected *domain.TeacherDocument

		for i := range docs {
			d := &docs[i]
			if d.DocumentType != t {
				continue
			}
			switch d.Status {
			case domain.DocStatusApproved:
				entry.HasApproved = true
			case domain.DocStatusPending:
				entry.HasPending = true
			case domain.DocStatusRejected:
				if rejected == nil || d.CreatedAt.After(rejected.CreatedAt) {
					rejected = d
				}
			}
			if entry.Latest == nil || d.CreatedAt.After(entry.Latest.CreatedAt) {
				entry.Latest = d
			}
		}

		if !entry.HasApproved && !entry.HasPending {
			entry.LatestRejection = rejected
		}
		out = append(out, entry)
	}
	return out
}

// IsVerified reports whether every required type has an approved document.
func IsVerified(docs []domain.TeacherDocument) bool {
	for _, e := range Summarize(docs) {
		if !e.HasApproved {
			return false
		}
	}
	return true
}

// PendingCount counts pending rows, not types.
func PendingCount(docs []domain.TeacherDocument) int {
	n := 0
	for _, d := range docs {
		if d.Status == domain.DocStatusPending {
			n++
		}
	}
	return n
}

// MissingTypes lists required types with no approved document.
func MissingTypes(docs []domain.TeacherDocument) []domain.DocumentType {
	var out []domain.DocumentType
	for _, e := range Summarize(docs) {
		if !e.HasApproved {
			out = append(out, e.Type)
		}
	}
	return out
}
