package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/interfaces"
	"github.com/temped/temped-api/internal/repository"
	"github.com/temped/temped-api/internal/services/apperr"
	"github.com/temped/temped-api/internal/session"
	"github.com/temped/temped-api/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	dateLayout      = "2006-01-02"
)

func requireSession(s *session.Session) error {
	if s == nil || s.UserID == uuid.Nil {
		return apperr.New(apperr.Unauthorized, "authentication required")
	}
	return nil
}

func requireRole(s *session.Session, role string) error {
	if err := requireSession(s); err != nil {
		return err
	}
	if !s.HasRole(role) {
		return apperr.Denied("%s role required", strings.ToLower(role))
	}
	return nil
}

// lookupErr maps a missing row to a not-found error and wraps anything else.
func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Missing("%s not found", what)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// objectPath places a new blob under its owner with a sortable unique name.
func objectPath(owner uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/%s%s", owner, ulid.Make().String(), ext)
}

func parseDate(field, v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, apperr.Invalid("%s must be a date (YYYY-MM-DD)", field)
	}
	return t, nil
}

func parseOptionalDate(field string, v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := parseDate(field, *v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return apperr.Invalid("latitude and longitude must be given together")
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return apperr.Invalid("coordinates out of range")
	}
	return nil
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// signer resolves storage paths to download URLs, logging failures instead
// of failing the read.
type signer struct {
	storage interfaces.Storage
	log     *zap.Logger
}

func (s signer) url(ctx context.Context, bucket string, path *string) *string {
	if path == nil || *path == "" || s.storage == nil {
		return nil
	}
	u, err := s.storage.SignedURL(ctx, bucket, *path)
	if err != nil {
		s.log.Warn("sign url", zap.String("bucket", bucket), zap.String("path", *path), zap.Error(err))
		return nil
	}
	return &u
}

// putObject stores b and returns its path. undo removes the blob again and
// is meant for a failed follow-up database write.
func putObject(ctx context.Context, st interfaces.Storage, log *zap.Logger, bucket string, owner uuid.UUID, name string, b []byte) (path string, undo func(), err error) {
	ext := utils.Ext(name)
	path, err = st.Upload(ctx, bucket, objectPath(owner, ext), b, utils.ContentType(name, b))
	if err != nil {
		return "", nil, fmt.Errorf("upload to %s: %w", bucket, err)
	}
	undo = func() {
		if rmErr := st.Remove(context.WithoutCancel(ctx), bucket, path); rmErr != nil {
			log.Error("remove orphaned upload", zap.String("bucket", bucket), zap.String("path", path), zap.Error(rmErr))
		}
	}
	return path, undo, nil
}

// dropObject deletes a blob that is no longer referenced.
func dropObject(ctx context.Context, st interfaces.Storage, log *zap.Logger, bucket string, path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := st.Remove(context.WithoutCancel(ctx), bucket, *path); err != nil {
		log.Warn("remove replaced upload", zap.String("bucket", bucket), zap.String("path", *path), zap.Error(err))
	}
}

// completeness keeps teachers.profile_completeness in step with the rows it
// is derived from.
type completeness struct {
	teachers repository.TeacherRepository
	docs     repository.DocumentRepository
	log      *zap.Logger
}

func (c completeness) refresh(ctx context.Context, teacherID uuid.UUID) {
	t, err := c.teachers.FindByID(ctx, teacherID)
	if err != nil {
		c.log.Warn("refresh completeness: load teacher", zap.Stringer("teacher_id", teacherID), zap.Error(err))
		return
	}
	docs, err := c.docs.ListByTeacher(ctx, teacherID)
	if err != nil {
		c.log.Warn("refresh completeness: load documents", zap.Stringer("teacher_id", teacherID), zap.Error(err))
		return
	}
	value := computeCompleteness(t, docs)
	if value == t.ProfileCompleteness {
		return
	}
	if err := c.teachers.SetCompleteness(ctx, teacherID, value); err != nil {
		c.log.Warn("refresh completeness: save", zap.Stringer("teacher_id", teacherID), zap.Error(err))
	}
}

func uniqueDocTypes(in []domain.DocumentType) []domain.DocumentType {
	seen := map[domain.DocumentType]bool{}
	out := make([]domain.DocumentType, 0, len(in))
	for _, t := range in {
		if t.Valid() && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
