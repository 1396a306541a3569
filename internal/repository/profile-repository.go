package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
)

// NewAccount is everything written when someone registers. Exactly one of
// Teacher or School is set, matching RoleCode.
type NewAccount struct {
	Profile  *domain.Profile
	RoleCode string
	Consents []string
	Teacher  *domain.Teacher
	School   *domain.School
}

type ProfileRepository interface {
	CreateAccount(ctx context.Context, acc NewAccount) error
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateAccount(ctx context.Context, acc NewAccount) error {
	if acc.Profile == nil {
		return errors.New("nil profile")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acc.Profile).Error; err != nil {
			return err
		}
		userID := acc.Profile.ID

		var role domain.Role
		if err := tx.Where("code = ?", acc.RoleCode).First(&role).Error; err != nil {
			return err
		}
		if err := tx.Create(&domain.UserRole{UserID: userID, RoleID: role.ID}).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		seen := map[string]bool{}
		for _, code := range acc.Consents {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			c := &domain.UserConsent{UserID: userID, ConsentCode: code, Accepted: true, AcceptedAt: &now}
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}

		switch {
		case acc.Teacher != nil:
			acc.Teacher.UserID = userID
			return tx.Create(acc.Teacher).Error
		case acc.School != nil:
			acc.School.UserID = userID
			return tx.Create(acc.School).Error
		}
		return nil
	})
}

func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
