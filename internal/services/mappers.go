package services

import (
	"context"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/verification"
	"github.com/temped/temped-api/pkg/geo"
)

func computeCompleteness(t *domain.Teacher, docs []domain.TeacherDocument) int {
	return verification.Completeness(verification.FormFromTeacher(t), docs, nil)
}

func (s signer) document(ctx context.Context, d *domain.TeacherDocument) dto.DocumentResponse {
	out := dto.DocumentResponse{
		ID:              d.ID,
		TeacherID:       d.TeacherID,
		DocumentType:    d.DocumentType,
		Label:           d.DocumentType.Label(),
		FileName:        d.FileName,
		Status:          d.Status,
		ReviewedBy:      d.ReviewedBy,
		ReviewedAt:      d.ReviewedAt,
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
	}
	if u := s.url(ctx, domain.BucketDocuments, &d.FileURL); u != nil {
		out.URL = *u
	}
	return out
}

func (s signer) documents(ctx context.Context, docs []domain.TeacherDocument) []dto.DocumentResponse {
	out := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, s.document(ctx, &docs[i]))
	}
	return out
}

func (s signer) verification(ctx context.Context, docs []domain.TeacherDocument) dto.VerificationResponse {
	entries := verification.Summarize(docs)
	summary := make([]dto.SummaryEntryResponse, 0, len(entries))
	for _, e := range entries {
		item := dto.SummaryEntryResponse{
			Type:        e.Type,
			Label:       e.Label,
			HasApproved: e.HasApproved,
			HasPending:  e.HasPending,
		}
		if e.Latest != nil {
			d := s.document(ctx, e.Latest)
			item.Latest = &d
		}
		if e.LatestRejection != nil {
			d := s.document(ctx, e.LatestRejection)
			item.LatestRejection = &d
		}
		summary = append(summary, item)
	}

	missing := verification.MissingTypes(docs)
	if missing == nil {
		missing = []domain.DocumentType{}
	}
	return dto.VerificationResponse{
		IsVerified:   verification.IsVerified(docs),
		PendingCount: verification.PendingCount(docs),
		Missing:      missing,
		Summary:      summary,
	}
}

func (s signer) teacher(ctx context.Context, t *domain.Teacher, docs []domain.TeacherDocument) dto.TeacherProfileResponse {
	exps := make([]dto.ExperienceResponse, 0, len(t.Experiences))
	for _, e := range t.Experiences {
		exps = append(exps, toExperienceResponse(e))
	}
	refs := t.TeacherReferences.Data()
	if refs == nil {
		refs = []domain.TeacherReference{}
	}
	phases := []string(t.EducationPhases)
	if phases == nil {
		phases = []string{}
	}

	return dto.TeacherProfileResponse{
		ID:                  t.ID,
		UserID:              t.UserID,
		FirstName:           t.FirstName,
		Surname:             t.Surname,
		Description:         t.Description,
		EducationPhases:     phases,
		Subjects:            t.Subjects.Data(),
		Address:             t.Address,
		Latitude:            t.Latitude,
		Longitude:           t.Longitude,
		SearchRadiusKm:      t.SearchRadiusKm,
		IDNumber:            t.IDNumber,
		ProfilePictureURL:   s.url(ctx, domain.BucketProfilePictures, t.ProfilePicture),
		References:          refs,
		Experiences:         exps,
		ProfileCompleteness: t.ProfileCompleteness,
		IsVerified:          verification.IsVerified(docs),
		UpdatedAt:           t.UpdatedAt,
	}
}

func toExperienceResponse(e domain.TeacherExperience) dto.ExperienceResponse {
	return dto.ExperienceResponse{
		ID:          e.ID,
		SchoolName:  e.SchoolName,
		Position:    e.Position,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Description: e.Description,
	}
}

func (s signer) school(ctx context.Context, sc *domain.School) dto.SchoolProfileResponse {
	return dto.SchoolProfileResponse{
		ID:                         sc.ID,
		UserID:                     sc.UserID,
		Name:                       sc.Name,
		EMISNumber:                 sc.EMISNumber,
		Description:                sc.Description,
		Address:                    sc.Address,
		Latitude:                   sc.Latitude,
		Longitude:                  sc.Longitude,
		Phone:                      sc.Phone,
		RegistrationCertificateURL: s.url(ctx, domain.BucketRegistrationCertificates, sc.RegistrationCertificate),
	}
}

// toJobResponse annotates the distance from origin when both sides have
// coordinates.
func toJobResponse(j *domain.Job, origin geo.Point) dto.JobResponse {
	out := dto.JobResponse{
		ID:             j.ID,
		SchoolID:       j.SchoolID,
		Title:          j.Title,
		Description:    j.Description,
		Subject:        j.Subject,
		EducationPhase: j.EducationPhase,
		StartDate:      j.StartDate,
		EndDate:        j.EndDate,
		Address:        j.Address,
		Latitude:       j.Latitude,
		Longitude:      j.Longitude,
		Status:         j.Status,
		CreatedAt:      j.CreatedAt,
	}
	if j.School != nil {
		out.SchoolName = j.School.Name
	}
	if d, ok := geo.Between(origin, jobPoint(j)); ok {
		d = geo.Round1(d)
		out.DistanceKm = &d
	}
	return out
}

func jobPoint(j *domain.Job) geo.Point {
	return geo.Point{Lat: j.Latitude, Lng: j.Longitude}
}

func teacherPoint(t *domain.Teacher) geo.Point {
	return geo.Point{Lat: t.Latitude, Lng: t.Longitude}
}

func toApplicationResponse(a *domain.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		TeacherID:   a.TeacherID,
		CoverLetter: a.CoverLetter,
		Status:      a.Status,
		Shortlisted: a.Shortlisted,
		CreatedAt:   a.CreatedAt,
	}
}
