package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/interfaces"
	"github.com/temped/temped-api/internal/repository"
	"github.com/temped/temped-api/internal/services/apperr"
	"github.com/temped/temped-api/internal/session"
	"github.com/temped/temped-api/internal/verification"
	"github.com/temped/temped-api/pkg/utils"
)

const (
	maxDocumentBytes = 10 << 20
	selfieWidth      = 1600
)

var documentExts = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

type DocumentService interface {
	// Teacher
	Upload(ctx context.Context, sess *session.Session, docType string, file dto.UploadFile) (*dto.DocumentResponse, error)
	ListMine(ctx context.Context, sess *session.Session) ([]dto.DocumentResponse, error)
	Delete(ctx context.Context, sess *session.Session, docID uuid.UUID) error
	Verification(ctx context.Context, sess *session.Session) (*dto.VerificationResponse, error)

	// Admin
	ListPending(ctx context.Context, sess *session.Session, limit, offset int) ([]dto.DocumentResponse, error)
	CountPending(ctx context.Context, sess *session.Session) (int64, error)
	Approve(ctx context.Context, sess *session.Session, docID uuid.UUID) (*dto.DocumentResponse, error)
	Reject(ctx context.Context, sess *session.Session, docID uuid.UUID, reason string) (*dto.DocumentResponse, error)
	TeacherDetail(ctx context.Context, sess *session.Session, teacherID uuid.UUID) (*dto.AdminTeacherResponse, error)
}

type documentService struct {
	docs         repository.DocumentRepository
	teachers     repository.TeacherRepository
	profiles     repository.ProfileRepository
	storage      interfaces.Storage
	sign         signer
	completeness completeness
	events       publisher
	log          *zap.Logger
	now          func() time.Time
}

func NewDocumentService(
	docs repository.DocumentRepository,
	teachers repository.TeacherRepository,
	profiles repository.ProfileRepository,
	storage interfaces.Storage,
	producer interfaces.ProducerHandler,
	log *zap.Logger,
) DocumentService {
	return &documentService{
		docs:         docs,
		teachers:     teachers,
		profiles:     profiles,
		storage:      storage,
		sign:         signer{storage: storage, log: log},
		completeness: completeness{teachers: teachers, docs: docs, log: log},
		events:       publisher{producer: producer, log: log},
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) Upload(ctx context.Context, sess *session.Session, docType string, file dto.UploadFile) (*dto.DocumentResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}

	typ, err := domain.ParseDocumentType(docType)
	if err != nil {
		return nil, apperr.Invalid("%v", err)
	}
	data, name, err := prepareDocument(typ, file)
	if err != nil {
		return nil, err
	}

	path, undo, err := putObject(ctx, s.storage, s.log, domain.BucketDocuments, t.ID, name, data)
	if err != nil {
		return nil, err
	}

	doc := &domain.TeacherDocument{
		TeacherID:    t.ID,
		DocumentType: typ,
		FileURL:      path,
		FileName:     trimmedOrNil(utils.SanitizeFilename(file.Name)),
		Status:       domain.DocStatusPending,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		undo()
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.log.Info("document uploaded",
		zap.Stringer("document_id", doc.ID),
		zap.Stringer("teacher_id", t.ID),
		zap.String("type", string(typ)),
	)
	s.events.publish(ctx, dto.EventDocumentUploaded, t.ID, dto.DocumentUploadedEvent{
		DocumentID:   doc.ID,
		TeacherID:    t.ID,
		DocumentType: string(typ),
	})
	s.completeness.refresh(ctx, t.ID)

	out := s.sign.document(ctx, doc)
	return &out, nil
}

// prepareDocument checks a document upload and returns the bytes and name to
// store. Selfies are re-encoded as JPEG.
func prepareDocument(typ domain.DocumentType, file dto.UploadFile) ([]byte, string, error) {
	ext := utils.Ext(file.Name)
	if !documentExts[ext] {
		return nil, "", apperr.Invalid("only pdf/jpg/jpeg/png/webp allowed")
	}
	if len(file.Data) == 0 {
		return nil, "", apperr.Invalid("file is required")
	}
	if len(file.Data) > maxDocumentBytes {
		return nil, "", apperr.Invalid("file too large (max 10MB)")
	}

	if ext == ".pdf" {
		if typ == domain.DocTypeSelfie {
			return nil, "", apperr.Invalid("selfie must be an image")
		}
		if _, err := utils.CheckPDF(file.Data); err != nil {
			return nil, "", apperr.Invalid("%v", err)
		}
		return file.Data, file.Name, nil
	}

	if typ == domain.DocTypeSelfie {
		jpg, err := utils.NormalizeToJPG(file.Data, selfieWidth, 90)
		if err != nil {
			return nil, "", apperr.Invalid("unreadable image: %v", err)
		}
		return jpg, "selfie.jpg", nil
	}
	if _, err := utils.CheckImage(file.Data); err != nil {
		return nil, "", apperr.Invalid("unreadable image: %v", err)
	}
	return file.Data, file.Name, nil
}

func (s *documentService) ListMine(ctx context.Context, sess *session.Session) ([]dto.DocumentResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}
	docs, err := s.docs.ListByTeacher(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return s.sign.documents(ctx, docs), nil
}

// Delete withdraws a pending upload. Reviewed documents are part of the
// verification record and stay.
func (s *documentService) Delete(ctx context.Context, sess *session.Session, docID uuid.UUID) error {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return err
	}

	doc, err := s.docs.FindByID(ctx, docID)
	if err != nil {
		return lookupErr(err, "document")
	}
	if doc.TeacherID != t.ID {
		return apperr.Missing("document not found")
	}

	if err := s.docs.DeletePending(ctx, t.ID, docID); err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return apperr.Conflicts("only pending documents can be deleted")
		}
		return lookupErr(err, "document")
	}

	dropObject(ctx, s.storage, s.log, domain.BucketDocuments, &doc.FileURL)
	s.completeness.refresh(ctx, t.ID)
	return nil
}

func (s *documentService) Verification(ctx context.Context, sess *session.Session) (*dto.VerificationResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}
	docs, err := s.docs.ListByTeacher(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	out := s.sign.verification(ctx, docs)
	return &out, nil
}

func (s *documentService) ListPending(ctx context.Context, sess *session.Session, limit, offset int) ([]dto.DocumentResponse, error) {
	if err := requireRole(sess, domain.RoleAdmin); err != nil {
		return nil, err
	}
	limit, offset = page(limit, offset)
	docs, err := s.docs.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.sign.documents(ctx, docs), nil
}

func (s *documentService) CountPending(ctx context.Context, sess *session.Session) (int64, error) {
	if err := requireRole(sess, domain.RoleAdmin); err != nil {
		return 0, err
	}
	return s.docs.CountPending(ctx)
}

func (s *documentService) Approve(ctx context.Context, sess *session.Session, docID uuid.UUID) (*dto.DocumentResponse, error) {
	return s.review(ctx, sess, docID, true, nil)
}

func (s *documentService) Reject(ctx context.Context, sess *session.Session, docID uuid.UUID, reason string) (*dto.DocumentResponse, error) {
	return s.review(ctx, sess, docID, false, trimmedOrNil(reason))
}

func (s *documentService) review(ctx context.Context, sess *session.Session, docID uuid.UUID, approve bool, reason *string) (*dto.DocumentResponse, error) {
	if err := requireRole(sess, domain.RoleAdmin); err != nil {
		return nil, err
	}

	doc, err := s.docs.Review(ctx, repository.Review{
		ID:         docID,
		ReviewerID: sess.UserID,
		Approve:    approve,
		Reason:     reason,
		At:         s.now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotPending):
			return nil, apperr.Conflicts("document has already been reviewed")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperr.Missing("document not found")
		}
		return nil, fmt.Errorf("review document: %w", err)
	}

	s.log.Info("document reviewed",
		zap.Stringer("document_id", doc.ID),
		zap.String("status", string(doc.Status)),
		zap.Stringer("reviewer_id", sess.UserID),
	)
	s.notifyReviewed(ctx, doc)

	out := s.sign.document(ctx, doc)
	return &out, nil
}

// notifyReviewed runs after commit, so failures here are only logged.
func (s *documentService) notifyReviewed(ctx context.Context, doc *domain.TeacherDocument) {
	t, err := s.teachers.FindByID(ctx, doc.TeacherID)
	if err != nil {
		s.log.Warn("document reviewed: load teacher", zap.Stringer("teacher_id", doc.TeacherID), zap.Error(err))
		return
	}
	p, err := s.profiles.FindByID(ctx, t.UserID)
	if err != nil {
		s.log.Warn("document reviewed: load profile", zap.Stringer("user_id", t.UserID), zap.Error(err))
		return
	}
	docs, err := s.docs.ListByTeacher(ctx, t.ID)
	if err != nil {
		s.log.Warn("document reviewed: load documents", zap.Stringer("teacher_id", t.ID), zap.Error(err))
		return
	}

	s.events.publish(ctx, dto.EventDocumentReviewed, t.ID, dto.DocumentReviewedEvent{
		DocumentID:      doc.ID,
		TeacherID:       t.ID,
		Email:           p.Email,
		FullName:        p.FullName,
		DocumentLabel:   doc.DocumentType.Label(),
		Status:          string(doc.Status),
		RejectionReason: doc.RejectionReason,
		Verified:        verification.IsVerified(docs),
	})
}

func (s *documentService) TeacherDetail(ctx context.Context, sess *session.Session, teacherID uuid.UUID) (*dto.AdminTeacherResponse, error) {
	if err := requireRole(sess, domain.RoleAdmin); err != nil {
		return nil, err
	}

	t, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		return nil, lookupErr(err, "teacher")
	}
	p, err := s.profiles.FindByID(ctx, t.UserID)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	docs, err := s.docs.ListByTeacher(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AdminTeacherResponse{
		Teacher:              s.sign.teacher(ctx, t, docs),
		Email:                p.Email,
		Documents:            s.sign.documents(ctx, docs),
		Verification:         s.sign.verification(ctx, docs),
		StoredCompleteness:   t.ProfileCompleteness,
		ComputedCompleteness: computeCompleteness(t, docs),
	}, nil
}
