package verification

import (
	"math"
	"strings"

	"github.com/temped/temped-api/internal/domain"
)

// ProfileForm is the teacher profile as currently edited, before or after it
// is saved.
type ProfileForm struct {
	FirstName       string
	Surname         string
	Description     string
	EducationPhases []string
	Subjects        domain.Subjects
	Address         string
	IDNumber        string

	HasProfilePicture    bool // a picture is already saved
	ProfilePictureStaged bool // a new picture is chosen but not uploaded yet
	RemoveProfilePicture bool // the saved picture is marked for removal

	ExperienceCount int
	References      []domain.TeacherReference
}

// FormFromTeacher builds the form state for a persisted teacher. Experiences
// must be preloaded.
func FormFromTeacher(t *domain.Teacher) ProfileForm {
	return ProfileForm{
		FirstName:         t.FirstName,
		Surname:           t.Surname,
		Description:       t.Description,
		EducationPhases:   t.EducationPhases,
		Subjects:          t.Subjects.Data(),
		Address:           t.Address,
		IDNumber:          t.IDNumber,
		HasProfilePicture: t.ProfilePicture != nil && *t.ProfilePicture != "",
		ExperienceCount:   len(t.Experiences),
		References:        t.TeacherReferences.Data(),
	}
}

// Checklist evaluates every completeness condition in a fixed order. The
// length of the result is the score's denominator.
func Checklist(form ProfileForm, saved []domain.TeacherDocument, staged []domain.DocumentType) []bool {
	checks := []bool{
		notBlank(form.FirstName),
		notBlank(form.Surname),
		notBlank(form.Description),
		len(form.EducationPhases) > 0,
		hasSubject(form.Subjects),
		notBlank(form.Address),
		notBlank(form.IDNumber),
		form.ProfilePictureStaged || (form.HasProfilePicture && !form.RemoveProfilePicture),
	}

	for _, t := range domain.ChecklistDocumentTypes() {
		checks = append(checks, hasDocument(t, saved, staged))
	}

	checks = append(checks,
		form.ExperienceCount > 0,
		hasCompleteReference(form.References),
	)
	return checks
}

// Completeness returns round(100 * satisfied / total) for the checklist.
func Completeness(form ProfileForm, saved []domain.TeacherDocument, staged []domain.DocumentType) int {
	checks := Checklist(form, saved, staged)
	done := 0
	for _, ok := range checks {
		if ok {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(checks))))
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func hasSubject(subjects domain.Subjects) bool {
	for _, list := range subjects {
		for _, s := range list {
			if notBlank(s) {
				return true
			}
		}
	}
	return false
}

func hasDocument(t domain.DocumentType, saved []domain.TeacherDocument, staged []domain.DocumentType) bool {
	for _, d := range saved {
		if d.DocumentType == t {
			return true
		}
	}
	for _, s := range staged {
		if s == t {
			return true
		}
	}
	return false
}

func hasCompleteReference(refs []domain.TeacherReference) bool {
	for _, r := range refs {
		if notBlank(r.Name) && notBlank(r.Email) {
			return true
		}
	}
	return false
}
