package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
)

// Review is one admin decision on a pending row.
type Review struct {
	ID         uuid.UUID
	ReviewerID uuid.UUID
	Approve    bool
	Reason     *string // rejection only
	At         time.Time
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.TeacherDocument) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TeacherDocument, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]domain.TeacherDocument, error)
	DeletePending(ctx context.Context, teacherID, docID uuid.UUID) error

	ListPending(ctx context.Context, limit, offset int) ([]domain.TeacherDocument, error)
	CountPending(ctx context.Context) (int64, error)

	// Review applies r only if the document is still pending and records an
	// audit row in the same transaction.
	Review(ctx context.Context, r Review) (*domain.TeacherDocument, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (d *documentRepository) Create(ctx context.Context, doc *domain.TeacherDocument) error {
	return d.db.WithContext(ctx).Create(doc).Error
}

func (d *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TeacherDocument, error) {
	var doc domain.TeacherDocument
	if err := d.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *documentRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]domain.TeacherDocument, error) {
	var docs []domain.TeacherDocument
	err := d.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// DeletePending removes the row only while it is pending and owned by
// teacherID.
func (d *documentRepository) DeletePending(ctx context.Context, teacherID, docID uuid.UUID) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("id = ? AND teacher_id = ? AND status = ?", docID, teacherID, domain.DocStatusPending).
			Delete(&domain.TeacherDocument{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var count int64
		if err := tx.Model(&domain.TeacherDocument{}).
			Where("id = ? AND teacher_id = ?", docID, teacherID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNotPending
		}
		return gorm.ErrRecordNotFound
	})
}

func (d *documentRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.TeacherDocument, error) {
	var docs []domain.TeacherDocument

	err := d.db.WithContext(ctx).Where("status = ?", domain.DocStatusPending).Order("created_at ASC").Limit(limit).Offset(offset).Find(&docs).Error

	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (d *documentRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&domain.TeacherDocument{}).
		Where("status = ?", domain.DocStatusPending).
		Count(&count).Error
	return count, err
}

func (d *documentRepository) Review(ctx context.Context, r Review) (*domain.TeacherDocument, error) {
	status, action := domain.DocStatusRejected, domain.AuditActionReject
	if r.Approve {
		status, action = domain.DocStatusApproved, domain.AuditActionApprove
	}

	var doc domain.TeacherDocument
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.TeacherDocument{}).
			Where("id = ? AND status = ?", r.ID, domain.DocStatusPending).
			Updates(map[string]any{
				"status":           status,
				"reviewed_by":      r.ReviewerID,
				"reviewed_at":      r.At,
				"rejection_reason": r.Reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if err := casResult(tx, &domain.TeacherDocument{}, r.ID, res.RowsAffected); err != nil {
			return err
		}

		audit := &domain.AuditLog{
			ID:       uuid.New(),
			ActorID:  r.ReviewerID,
			Action:   action,
			Entity:   domain.AuditEntityDocument,
			EntityID: r.ID,
			Note:     r.Reason,
		}
		if err := tx.Create(audit).Error; err != nil {
			return err
		}

		return tx.First(&doc, "id = ?", r.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
