package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/repository"
	"github.com/temped/temped-api/internal/services/apperr"
	"github.com/temped/temped-api/internal/session"
	"github.com/temped/temped-api/pkg/geo"
)

type JobService interface {
	Create(ctx context.Context, sess *session.Session, input dto.JobRequest) (*dto.JobResponse, error)
	Update(ctx context.Context, sess *session.Session, jobID uuid.UUID, input dto.JobRequest) (*dto.JobResponse, error)
	SetStatus(ctx context.Context, sess *session.Session, jobID uuid.UUID, status string) (*dto.JobResponse, error)
	Get(ctx context.Context, sess *session.Session, jobID uuid.UUID) (*dto.JobResponse, error)
	List(ctx context.Context, sess *session.Session, q dto.JobQuery) ([]dto.JobResponse, error)
	ListMine(ctx context.Context, sess *session.Session) ([]dto.JobResponse, error)
}

type jobService struct {
	jobs     repository.JobRepository
	schools  repository.SchoolRepository
	teachers repository.TeacherRepository
	log      *zap.Logger
}

func NewJobService(
	jobs repository.JobRepository,
	schools repository.SchoolRepository,
	teachers repository.TeacherRepository,
	log *zap.Logger,
) JobService {
	return &jobService{
		jobs:     jobs,
		schools:  schools,
		teachers: teachers,
		log:      log,
	}
}

func (s *jobService) Create(ctx context.Context, sess *session.Session, input dto.JobRequest) (*dto.JobResponse, error) {
	school, err := currentSchool(ctx, s.schools, sess)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{SchoolID: school.ID, Status: domain.JobStatusOpen}
	if err := applyJob(job, input, school); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.log.Info("job created", zap.Stringer("job_id", job.ID), zap.Stringer("school_id", school.ID))
	job.School = school
	out := toJobResponse(job, geo.Point{})
	return &out, nil
}

func (s *jobService) Update(ctx context.Context, sess *session.Session, jobID uuid.UUID, input dto.JobRequest) (*dto.JobResponse, error) {
	school, job, err := s.ownedJob(ctx, sess, jobID)
	if err != nil {
		return nil, err
	}
	if err := applyJob(job, input, school); err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	out := toJobResponse(job, geo.Point{})
	return &out, nil
}

func (s *jobService) SetStatus(ctx context.Context, sess *session.Session, jobID uuid.UUID, status string) (*dto.JobResponse, error) {
	st := domain.JobStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return nil, apperr.Invalid("status must be one of Open, Interviewing, Hired, Closed")
	}

	_, job, err := s.ownedJob(ctx, sess, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.UpdateStatus(ctx, job.ID, st); err != nil {
		return nil, lookupErr(err, "job")
	}

	job.Status = st
	out := toJobResponse(job, geo.Point{})
	return &out, nil
}

func (s *jobService) Get(ctx context.Context, sess *session.Session, jobID uuid.UUID) (*dto.JobResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, lookupErr(err, "job")
	}
	out := toJobResponse(job, s.viewerPoint(ctx, sess))
	return &out, nil
}

// List searches jobs. Teachers only see open jobs unless they ask for a
// status, and near=true keeps jobs inside their search radius.
func (s *jobService) List(ctx context.Context, sess *session.Session, q dto.JobQuery) ([]dto.JobResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	f := repository.JobFilter{
		Query:   q.Q,
		Phase:   strings.TrimSpace(q.Phase),
		Subject: strings.TrimSpace(q.Subject),
		Status:  domain.JobStatus(strings.TrimSpace(q.Status)),
	}
	if f.Phase != "" && !domain.ValidEducationPhase(f.Phase) {
		return nil, apperr.Invalid("unknown education phase %q", f.Phase)
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Invalid("unknown job status %q", f.Status)
	}

	var teacher *domain.Teacher
	if sess.HasRole(domain.RoleTeacher) {
		if f.Status == "" {
			f.Status = domain.JobStatusOpen
		}
		t, err := s.teachers.FindByUserID(ctx, sess.UserID)
		if err != nil {
			return nil, lookupErr(err, "teacher profile")
		}
		teacher = t
	}

	// radius filtering happens after the query, so paginate in memory then
	near := q.Near && teacher != nil && teacherPoint(teacher).Valid()
	limit, offset := page(q.Limit, q.Offset)
	if !near {
		f.Limit, f.Offset = limit, offset
	}

	jobs, err := s.jobs.List(ctx, f)
	if err != nil {
		return nil, err
	}

	origin := geo.Point{}
	if teacher != nil {
		origin = teacherPoint(teacher)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		if near && !withinRadius(origin, jobPoint(&jobs[i]), teacher.SearchRadiusKm) {
			continue
		}
		out = append(out, toJobResponse(&jobs[i], origin))
	}

	if near {
		// jobs without coordinates go last
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DistanceKm != nil && out[j].DistanceKm == nil
		})
		if offset >= len(out) {
			return []dto.JobResponse{}, nil
		}
		out = out[offset:]
		if len(out) > limit {
			out = out[:limit]
		}
	}
	return out, nil
}

func (s *jobService) ListMine(ctx context.Context, sess *session.Session) ([]dto.JobResponse, error) {
	school, err := currentSchool(ctx, s.schools, sess)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.List(ctx, repository.JobFilter{SchoolID: &school.ID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobResponse(&jobs[i], geo.Point{}))
	}
	return out, nil
}

func (s *jobService) ownedJob(ctx context.Context, sess *session.Session, jobID uuid.UUID) (*domain.School, *domain.Job, error) {
	school, err := currentSchool(ctx, s.schools, sess)
	if err != nil {
		return nil, nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, nil, lookupErr(err, "job")
	}
	if job.SchoolID != school.ID {
		return nil, nil, apperr.Denied("job belongs to another school")
	}
	return school, job, nil
}

func (s *jobService) viewerPoint(ctx context.Context, sess *session.Session) geo.Point {
	if !sess.HasRole(domain.RoleTeacher) {
		return geo.Point{}
	}
	t, err := s.teachers.FindByUserID(ctx, sess.UserID)
	if err != nil {
		return geo.Point{}
	}
	return teacherPoint(t)
}

// withinRadius keeps jobs without coordinates, since their distance is
// unknown rather than large.
func withinRadius(origin, p geo.Point, radiusKm int) bool {
	d, ok := geo.Between(origin, p)
	if !ok {
		return true
	}
	if radiusKm <= 0 {
		radiusKm = domain.DefaultSearchRadiusKm
	}
	return d <= float64(radiusKm)
}

func applyJob(job *domain.Job, in dto.JobRequest, school *domain.School) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return apperr.Invalid("title is required")
	}
	phase := strings.TrimSpace(in.EducationPhase)
	if phase != "" && !domain.ValidEducationPhase(phase) {
		return apperr.Invalid("unknown education phase %q", phase)
	}
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return err
	}
	end, err := parseOptionalDate("end_date", in.EndDate)
	if err != nil {
		return err
	}
	if end != nil && end.Before(start) {
		return apperr.Invalid("end_date must not be before start_date")
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return err
	}

	job.Title = title
	job.Description = strings.TrimSpace(in.Description)
	job.Subject = strings.TrimSpace(in.Subject)
	job.EducationPhase = phase
	job.StartDate = start
	job.EndDate = end
	job.Address = strings.TrimSpace(in.Address)
	job.Latitude, job.Longitude = in.Latitude, in.Longitude

	// default the location to the school's
	if job.Latitude == nil {
		job.Latitude, job.Longitude = school.Latitude, school.Longitude
	}
	if job.Address == "" {
		job.Address = school.Address
	}
	return nil
}
