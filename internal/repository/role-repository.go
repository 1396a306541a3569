package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/temped/temped-api/internal/domain"
)

type RoleRepository interface {
	Seed(ctx context.Context, codes []string) error
	FindByCode(ctx context.Context, code string) (*domain.Role, error)
	FindByCodes(ctx context.Context, codes []string) ([]domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// Seed inserts any missing role codes and leaves existing rows untouched.
func (r *roleRepository) Seed(ctx context.Context, codes []string) error {
	roles := make([]domain.Role, 0, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		roles = append(roles, domain.Role{Code: c, Name: c[:1] + strings.ToLower(c[1:])})
	}
	if len(roles) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&roles).Error
}

func (r *roleRepository) FindByCode(ctx context.Context, code string) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByCodes(ctx context.Context, codes []string) ([]domain.Role, error) {
	var roles []domain.Role
	if len(codes) == 0 {
		return roles, nil
	}
	if err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
