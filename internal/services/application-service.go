package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/helper"
	"github.com/temped/temped-api/internal/interfaces"
	"github.com/temped/temped-api/internal/repository"
	"github.com/temped/temped-api/internal/services/apperr"
	"github.com/temped/temped-api/internal/session"
	"github.com/temped/temped-api/pkg/geo"
)

const maxCoverLetterLength = 5000

type ApplicationService interface {
	Apply(ctx context.Context, sess *session.Session, jobID uuid.UUID, input dto.ApplyRequest) (*dto.ApplicationResponse, error)
	ListForJob(ctx context.Context, sess *session.Session, jobID uuid.UUID) ([]dto.ApplicationResponse, error)
	ListMine(ctx context.Context, sess *session.Session) ([]dto.ApplicationResponse, error)
	SetStatus(ctx context.Context, sess *session.Session, appID uuid.UUID, status string) (*dto.ApplicationResponse, error)
	SetShortlisted(ctx context.Context, sess *session.Session, appID uuid.UUID, shortlisted bool) (*dto.ApplicationResponse, error)
}

type applicationService struct {
	apps     repository.ApplicationRepository
	jobs     repository.JobRepository
	teachers repository.TeacherRepository
	schools  repository.SchoolRepository
	profiles repository.ProfileRepository
	events   publisher
	log      *zap.Logger
}

func NewApplicationService(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	teachers repository.TeacherRepository,
	schools repository.SchoolRepository,
	profiles repository.ProfileRepository,
	producer interfaces.ProducerHandler,
	log *zap.Logger,
) ApplicationService {
	return &applicationService{
		apps:     apps,
		jobs:     jobs,
		teachers: teachers,
		schools:  schools,
		profiles: profiles,
		events:   publisher{producer: producer, log: log},
		log:      log,
	}
}

func (s *applicationService) Apply(ctx context.Context, sess *session.Session, jobID uuid.UUID, input dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}
	cover := strings.TrimSpace(input.CoverLetter)
	if len(cover) > maxCoverLetterLength {
		return nil, apperr.Invalid("cover_letter is too long")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, lookupErr(err, "job")
	}
	if job.Status != domain.JobStatusOpen {
		return nil, apperr.Conflicts("job is not open for applications")
	}

	app := &domain.Application{
		JobID:       job.ID,
		TeacherID:   t.ID,
		CoverLetter: cover,
		Status:      domain.ApplicationStatusPending,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		if helper.IsUniqueViolation(err, "uidx_applications_job_teacher") {
			return nil, apperr.Conflicts("already applied to this job")
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.log.Info("application created", zap.Stringer("application_id", app.ID), zap.Stringer("job_id", job.ID))
	out := toApplicationResponse(app)
	jr := toJobResponse(job, teacherPoint(t))
	out.Job = &jr
	return &out, nil
}

func (s *applicationService) ListForJob(ctx context.Context, sess *session.Session, jobID uuid.UUID) ([]dto.ApplicationResponse, error) {
	school, err := currentSchool(ctx, s.schools, sess)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, lookupErr(err, "job")
	}
	if job.SchoolID != school.ID {
		return nil, apperr.Denied("job belongs to another school")
	}

	apps, err := s.apps.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		r := toApplicationResponse(&apps[i])
		if t := apps[i].Teacher; t != nil {
			r.Teacher = toApplicant(t, jobPoint(job))
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *applicationService) ListMine(ctx context.Context, sess *session.Session) ([]dto.ApplicationResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByTeacher(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		r := toApplicationResponse(&apps[i])
		if apps[i].Job != nil {
			jr := toJobResponse(apps[i].Job, teacherPoint(t))
			r.Job = &jr
		}
		out = append(out, r)
	}
	return out, nil
}

// SetStatus lets the owning school accept or reject, and the applicant
// withdraw. A withdrawn application is final.
func (s *applicationService) SetStatus(ctx context.Context, sess *session.Session, appID uuid.UUID, status string) (*dto.ApplicationResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	st := domain.ApplicationStatus(strings.ToLower(strings.TrimSpace(status)))

	app, err := s.apps.FindByID(ctx, appID)
	if err != nil {
		return nil, lookupErr(err, "application")
	}

	switch {
	case sess.HasRole(domain.RoleSchool):
		if st != domain.ApplicationStatusAccepted && st != domain.ApplicationStatusRejected {
			return nil, apperr.Invalid("status must be accepted or rejected")
		}
		if err := s.ownsApplicationJob(ctx, sess, app); err != nil {
			return nil, err
		}
	case sess.HasRole(domain.RoleTeacher):
		if st != domain.ApplicationStatusWithdrawn {
			return nil, apperr.Invalid("status must be withdrawn")
		}
		t, err := currentTeacher(ctx, s.teachers, sess)
		if err != nil {
			return nil, err
		}
		if app.TeacherID != t.ID {
			return nil, apperr.Missing("application not found")
		}
	default:
		return nil, apperr.Denied("school or teacher role required")
	}

	if app.Status == domain.ApplicationStatusWithdrawn {
		return nil, apperr.Conflicts("application was withdrawn")
	}
	if app.Status == st {
		out := toApplicationResponse(app)
		return &out, nil
	}

	if err := s.apps.UpdateStatus(ctx, app.ID, st); err != nil {
		return nil, lookupErr(err, "application")
	}
	app.Status = st

	s.log.Info("application status changed", zap.Stringer("application_id", app.ID), zap.String("status", string(st)))
	s.notifyStatusChanged(ctx, app)

	out := toApplicationResponse(app)
	return &out, nil
}

func (s *applicationService) SetShortlisted(ctx context.Context, sess *session.Session, appID uuid.UUID, shortlisted bool) (*dto.ApplicationResponse, error) {
	if err := requireRole(sess, domain.RoleSchool); err != nil {
		return nil, err
	}
	app, err := s.apps.FindByID(ctx, appID)
	if err != nil {
		return nil, lookupErr(err, "application")
	}
	if err := s.ownsApplicationJob(ctx, sess, app); err != nil {
		return nil, err
	}

	if err := s.apps.SetShortlisted(ctx, app.ID, shortlisted); err != nil {
		return nil, lookupErr(err, "application")
	}
	app.Shortlisted = shortlisted
	out := toApplicationResponse(app)
	return &out, nil
}

func (s *applicationService) ownsApplicationJob(ctx context.Context, sess *session.Session, app *domain.Application) error {
	school, err := currentSchool(ctx, s.schools, sess)
	if err != nil {
		return err
	}
	if app.Job == nil || app.Job.SchoolID != school.ID {
		return apperr.Denied("application belongs to another school")
	}
	return nil
}

func (s *applicationService) notifyStatusChanged(ctx context.Context, app *domain.Application) {
	t, err := s.teachers.FindByID(ctx, app.TeacherID)
	if err != nil {
		s.log.Warn("application status: load teacher", zap.Stringer("teacher_id", app.TeacherID), zap.Error(err))
		return
	}
	p, err := s.profiles.FindByID(ctx, t.UserID)
	if err != nil {
		s.log.Warn("application status: load profile", zap.Stringer("user_id", t.UserID), zap.Error(err))
		return
	}

	ev := dto.ApplicationStatusChangedEvent{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		TeacherID:     t.ID,
		Email:         p.Email,
		FullName:      p.FullName,
		Status:        string(app.Status),
	}
	if job, err := s.jobs.FindByID(ctx, app.JobID); err == nil {
		ev.JobTitle = job.Title
		if job.School != nil {
			ev.SchoolName = job.School.Name
		}
	}
	s.events.publish(ctx, dto.EventApplicationStatusChanged, app.ID, ev)
}

func toApplicant(t *domain.Teacher, jobLoc geo.Point) *dto.ApplicantResponse {
	out := &dto.ApplicantResponse{
		ID:                  t.ID,
		FirstName:           t.FirstName,
		Surname:             t.Surname,
		EducationPhases:     t.EducationPhases,
		ProfileCompleteness: t.ProfileCompleteness,
	}
	if d, ok := geo.Between(jobLoc, teacherPoint(t)); ok {
		d = geo.Round1(d)
		out.DistanceKm = &d
	}
	return out
}
