package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
)

type SchoolRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.School, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.School, error)
	Save(ctx context.Context, s *domain.School) error
	SetRegistrationCertificate(ctx context.Context, schoolID uuid.UUID, path *string) error
}

type schoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (s *schoolRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.School, error) {
	var school domain.School
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&school).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *schoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.School, error) {
	var school domain.School
	if err := s.db.WithContext(ctx).First(&school, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *schoolRepository) Save(ctx context.Context, school *domain.School) error {
	return s.db.WithContext(ctx).
		Model(school).
		Select("name", "emis_number", "description", "address", "latitude", "longitude", "phone").
		Updates(school).Error
}

func (s *schoolRepository) SetRegistrationCertificate(ctx context.Context, schoolID uuid.UUID, path *string) error {
	return s.db.WithContext(ctx).
		Model(&domain.School{}).
		Where("id = ?", schoolID).
		Update("registration_certificate", path).Error
}
