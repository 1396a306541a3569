package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
)

type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) error
	ListByStatus(ctx context.Context, status domain.TestimonialStatus, limit, offset int) ([]domain.Testimonial, error)
	Review(ctx context.Context, r Review) (*domain.Testimonial, error)
}

type testimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (t *testimonialRepository) Create(ctx context.Context, testimonial *domain.Testimonial) error {
	return t.db.WithContext(ctx).Create(testimonial).Error
}

func (t *testimonialRepository) ListByStatus(ctx context.Context, status domain.TestimonialStatus, limit, offset int) ([]domain.Testimonial, error) {
	order := "created_at DESC"
	if status == domain.TestimonialPending {
		order = "created_at ASC"
	}

	var list []domain.Testimonial
	err := t.db.WithContext(ctx).Where("status = ?", status).Order(order).Limit(limit).Offset(offset).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (t *testimonialRepository) Review(ctx context.Context, r Review) (*domain.Testimonial, error) {
	status, action := domain.TestimonialRejected, domain.AuditActionReject
	if r.Approve {
		status, action = domain.TestimonialApproved, domain.AuditActionApprove
	}

	var out domain.Testimonial
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Testimonial{}).
			Where("id = ? AND status = ?", r.ID, domain.TestimonialPending).
			Updates(map[string]any{
				"status":      status,
				"reviewed_by": r.ReviewerID,
				"reviewed_at": r.At,
			})
		if res.Error != nil {
			return res.Error
		}
		if err := casResult(tx, &domain.Testimonial{}, r.ID, res.RowsAffected); err != nil {
			return err
		}

		if err := tx.Create(&domain.AuditLog{
			ID:       uuid.New(),
			ActorID:  r.ReviewerID,
			Action:   action,
			Entity:   domain.AuditEntityTestimonial,
			EntityID: r.ID,
			Note:     r.Reason,
		}).Error; err != nil {
			return err
		}

		return tx.First(&out, "id = ?", r.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
