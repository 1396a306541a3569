package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
)

type TeacherRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Teacher, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Teacher, error)
	Save(ctx context.Context, t *domain.Teacher) error
	SetProfilePicture(ctx context.Context, teacherID uuid.UUID, path *string) error
	SetCompleteness(ctx context.Context, teacherID uuid.UUID, value int) error

	AddExperience(ctx context.Context, exp *domain.TeacherExperience) error
	ListExperiences(ctx context.Context, teacherID uuid.UUID) ([]domain.TeacherExperience, error)
	DeleteExperience(ctx context.Context, teacherID, expID uuid.UUID) error
}

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

// FindByUserID preloads experiences, which completeness needs.
func (t *teacherRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Teacher, error) {
	var teacher domain.Teacher
	err := t.db.WithContext(ctx).
		Preload("Experiences", func(db *gorm.DB) *gorm.DB { return db.Order("start_date DESC") }).
		Where("user_id = ?", userID).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (t *teacherRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Teacher, error) {
	var teacher domain.Teacher
	err := t.db.WithContext(ctx).
		Preload("Experiences", func(db *gorm.DB) *gorm.DB { return db.Order("start_date DESC") }).
		First(&teacher, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Save writes the editable profile columns. The picture path has its own
// setter so a stale form never clobbers an upload.
func (t *teacherRepository) Save(ctx context.Context, teacher *domain.Teacher) error {
	return t.db.WithContext(ctx).
		Model(teacher).
		Select(
			"first_name", "surname", "description", "education_phases", "subjects",
			"address", "latitude", "longitude", "search_radius_km", "id_number",
			"teacher_references", "profile_completeness",
		).
		Updates(teacher).Error
}

func (t *teacherRepository) SetProfilePicture(ctx context.Context, teacherID uuid.UUID, path *string) error {
	return t.db.WithContext(ctx).
		Model(&domain.Teacher{}).
		Where("id = ?", teacherID).
		Update("profile_picture", path).Error
}

func (t *teacherRepository) SetCompleteness(ctx context.Context, teacherID uuid.UUID, value int) error {
	return t.db.WithContext(ctx).
		Model(&domain.Teacher{}).
		Where("id = ?", teacherID).
		Update("profile_completeness", value).Error
}

func (t *teacherRepository) AddExperience(ctx context.Context, exp *domain.TeacherExperience) error {
	return t.db.WithContext(ctx).Create(exp).Error
}

func (t *teacherRepository) ListExperiences(ctx context.Context, teacherID uuid.UUID) ([]domain.TeacherExperience, error) {
	var exps []domain.TeacherExperience
	err := t.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("start_date DESC").
		Find(&exps).Error
	if err != nil {
		return nil, err
	}
	return exps, nil
}

func (t *teacherRepository) DeleteExperience(ctx context.Context, teacherID, expID uuid.UUID) error {
	res := t.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", expID, teacherID).
		Delete(&domain.TeacherExperience{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
