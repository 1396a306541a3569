package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/repository"
	"github.com/temped/temped-api/internal/services/apperr"
	"github.com/temped/temped-api/internal/session"
)

const maxTestimonialLength = 2000

type TestimonialService interface {
	Create(ctx context.Context, sess *session.Session, input dto.TestimonialRequest) (*domain.Testimonial, error)
	ListApproved(ctx context.Context, limit, offset int) ([]domain.Testimonial, error)

	// Admin
	ListPending(ctx context.Context, sess *session.Session, limit, offset int) ([]domain.Testimonial, error)
	Approve(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Testimonial, error)
	Reject(ctx context.Context, sess *session.Session, id uuid.UUID, reason string) (*domain.Testimonial, error)
}

type testimonialService struct {
	testimonials repository.TestimonialRepository
	profiles     repository.ProfileRepository
	schools      repository.SchoolRepository
	log          *zap.Logger
}

func NewTestimonialService(
	testimonials repository.TestimonialRepository,
	profiles repository.ProfileRepository,
	schools repository.SchoolRepository,
	log *zap.Logger,
) TestimonialService {
	return &testimonialService{
		testimonials: testimonials,
		profiles:     profiles,
		schools:      schools,
		log:          log,
	}
}

func (s *testimonialService) Create(ctx context.Context, sess *session.Session, input dto.TestimonialRequest) (*domain.Testimonial, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if !sess.HasRole(domain.RoleTeacher) && !sess.HasRole(domain.RoleSchool) {
		return nil, apperr.Denied("only teachers and schools can leave testimonials")
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperr.Invalid("content is required")
	}
	if len(content) > maxTestimonialLength {
		return nil, apperr.Invalid("content is too long")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperr.Invalid("rating must be between 1 and 5")
	}

	p, err := s.profiles.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	author := p.FullName
	if sess.HasRole(domain.RoleSchool) {
		if school, err := s.schools.FindByUserID(ctx, sess.UserID); err == nil && school.Name != "" {
			author = school.Name
		}
	}

	t := &domain.Testimonial{
		AuthorID:   sess.UserID,
		AuthorRole: sess.Role,
		AuthorName: author,
		Content:    content,
		Rating:     input.Rating,
		Status:     domain.TestimonialPending,
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return t, nil
}

func (s *testimonialService) ListApproved(ctx context.Context, limit, offset int) ([]domain.Testimonial, error) {
	limit, offset = page(limit, offset)
	return s.testimonials.ListByStatus(ctx, domain.TestimonialApproved, limit, offset)
}

func (s *testimonialService) ListPending(ctx context.Context, sess *session.Session, limit, offset int) ([]domain.Testimonial, error) {
	if err := requireRole(sess, domain.RoleAdmin); err != nil {
		return nil, err
	}
	limit, offset = page(limit, offset)
	return s.testimonials.ListByStatus(ctx, domain.TestimonialPending, limit, offset)
}

func (s *testimonialService) Approve(ctx context.Context, sess *session.Session, id uuid.UUID) (*domain.Testimonial, error) {
	return s.review(ctx, sess, id, true, nil)
}

func (s *testimonialService) Reject(ctx context.Context, sess *session.Session, id uuid.UUID, reason string) (*domain.Testimonial, error) {
	return s.review(ctx, sess, id, false, trimmedOrNil(reason))
}

func (s *testimonialService) review(ctx context.Context, sess *session.Session, id uuid.UUID, approve bool, reason *string) (*domain.Testimonial, error) {
	if err := requireRole(sess, domain.RoleAdmin); err != nil {
		return nil, err
	}

	t, err := s.testimonials.Review(ctx, repository.Review{
		ID:         id,
		ReviewerID: sess.UserID,
		Approve:    approve,
		Reason:     reason,
		At:         time.Now().UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotPending):
			return nil, apperr.Conflicts("testimonial has already been reviewed")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperr.Missing("testimonial not found")
		}
		return nil, fmt.Errorf("review testimonial: %w", err)
	}

	s.log.Info("testimonial reviewed", zap.Stringer("testimonial_id", t.ID), zap.String("status", string(t.Status)))
	return t, nil
}
