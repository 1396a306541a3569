package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/temped/temped-api/internal/domain"
)

var reviewUpdate = `UPDATE "teacher_documents" SET .* WHERE id = \$5 AND status = \$6`

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestReviewOnlyUpdatesPendingRows(t *testing.T) {
	for name, tc := range map[string]struct {
		existing int
		want     error
	}{
		"already reviewed": {existing: 1, want: ErrNotPending},
		"unknown document": {existing: 0, want: gorm.ErrRecordNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			db, mock := newMockDB(t)
			id := uuid.New()

			mock.ExpectBegin()
			mock.ExpectExec(reviewUpdate).
				WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), id, string(domain.DocStatusPending)).
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "teacher_documents" WHERE id = $1`)).
				WithArgs(id).
				WillReturnRows(countRows(tc.existing))
			mock.ExpectRollback()

			_, err := NewDocumentRepository(db).Review(context.Background(), Review{
				ID: id, ReviewerID: uuid.New(), Approve: true, At: time.Now(),
			})
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReviewWritesAuditRow(t *testing.T) {
	db, mock := newMockDB(t)
	id, admin := uuid.New(), uuid.New()
	reason := "blurry scan"

	mock.ExpectBegin()
	mock.ExpectExec(reviewUpdate).
		WithArgs(&reason, sqlmock.AnyArg(), admin, string(domain.DocStatusRejected), id, string(domain.DocStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "audit_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "teacher_documents" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "rejection_reason"}).
			AddRow(id.String(), string(domain.DocStatusRejected), reason))
	mock.ExpectCommit()

	doc, err := NewDocumentRepository(db).Review(context.Background(), Review{
		ID: id, ReviewerID: admin, Reason: &reason, At: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DocStatusRejected, doc.Status)
	require.NotNil(t, doc.RejectionReason)
	assert.Equal(t, reason, *doc.RejectionReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}
