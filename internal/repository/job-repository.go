package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
)

type JobFilter struct {
	Query    string
	Phase    string
	Subject  string
	Status   domain.JobStatus
	SchoolID *uuid.UUID
	Limit    int
	Offset   int
}

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Save(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, f JobFilter) ([]domain.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (j *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	return j.db.WithContext(ctx).Create(job).Error
}

func (j *jobRepository) Save(ctx context.Context, job *domain.Job) error {
	return j.db.WithContext(ctx).
		Model(job).
		Select(
			"title", "description", "subject", "education_phase", "start_date", "end_date",
			"address", "latitude", "longitude",
		).
		Updates(job).Error
}

func (j *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	if err := j.db.WithContext(ctx).Preload("School").First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (j *jobRepository) List(ctx context.Context, f JobFilter) ([]domain.Job, error) {
	q := j.db.WithContext(ctx).Model(&domain.Job{}).Preload("School")

	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + escapeLike(strings.ToLower(s)) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(subject) LIKE ?", like, like, like)
	}
	if f.Phase != "" {
		q = q.Where("education_phase = ?", f.Phase)
	}
	if f.Subject != "" {
		q = q.Where("LOWER(subject) = ?", strings.ToLower(f.Subject))
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SchoolID != nil {
		q = q.Where("school_id = ?", *f.SchoolID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var jobs []domain.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (j *jobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	res := j.db.WithContext(ctx).Model(&domain.Job{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
