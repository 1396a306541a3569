package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/temped/temped-api/internal/domain"
)

type ConsentRepository interface {
	CreateConsent(ctx context.Context, consent *domain.UserConsent) error
	ListCodes(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type consentRepository struct {
	db *gorm.DB
}

func NewConsentRepository(db *gorm.DB) ConsentRepository {
	return &consentRepository{db: db}
}

// CreateConsent is idempotent per (user, code).
func (c consentRepository) CreateConsent(ctx context.Context, consent *domain.UserConsent) error {
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(consent).Error
}

func (c consentRepository) ListCodes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var codes []string
	err := c.db.WithContext(ctx).
		Model(&domain.UserConsent{}).
		Where("user_id = ? AND accepted = ?", userID, true).
		Order("consent_code ASC").
		Pluck("consent_code", &codes).Error
	return codes, err
}
