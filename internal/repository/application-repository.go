package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error
	SetShortlisted(ctx context.Context, id uuid.UUID, shortlisted bool) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create fails with a unique violation on uidx_applications_job_teacher when
// the teacher already applied.
func (a *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	return a.db.WithContext(ctx).Create(app).Error
}

func (a *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	if err := a.db.WithContext(ctx).Preload("Job").First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (a *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error) {
	var apps []domain.Application
	err := a.db.WithContext(ctx).
		Preload("Teacher").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (a *applicationRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]domain.Application, error) {
	var apps []domain.Application
	err := a.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.School").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (a *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	return a.update(ctx, id, "status", status)
}

func (a *applicationRepository) SetShortlisted(ctx context.Context, id uuid.UUID, shortlisted bool) error {
	return a.update(ctx, id, "shortlisted", shortlisted)
}

func (a *applicationRepository) update(ctx context.Context, id uuid.UUID, column string, value any) error {
	res := a.db.WithContext(ctx).Model(&domain.Application{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
