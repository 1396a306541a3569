package verification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temped/temped-api/internal/domain"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func doc(t domain.DocumentType, s domain.DocumentStatus, minutes int) domain.TeacherDocument {
	return domain.TeacherDocument{
		ID:           uuid.New(),
		DocumentType: t,
		Status:       s,
		CreatedAt:    base.Add(time.Duration(minutes) * time.Minute),
	}
}

func entryFor(t *testing.T, entries []SummaryEntry, dt domain.DocumentType) SummaryEntry {
	t.Helper()
	for _, e := range entries {
		if e.Type == dt {
			return e
		}
	}
	t.Fatalf("no summary entry for %s", dt)
	return SummaryEntry{}
}

func TestSummarizeEmpty(t *testing.T) {
	entries := Summarize(nil)
	require.Len(t, entries, len(domain.RequiredDocumentTypes()))

	for i, e := range entries {
		assert.Equal(t, domain.RequiredDocumentTypes()[i], e.Type)
		assert.False(t, e.HasApproved)
		assert.False(t, e.HasPending)
		assert.Nil(t, e.Latest)
		assert.Nil(t, e.LatestRejection)
	}
}

func TestSummarizeOneEntryPerTypeRegardlessOfRows(t *testing.T) {
	docs := []domain.TeacherDocument{
		doc(domain.DocTypeCV, domain.DocStatusRejected, 0),
		doc(domain.DocTypeCV, domain.DocStatusRejected, 1),
		doc(domain.DocTypeCV, domain.DocStatusPending, 2),
		doc(domain.DocTypeSelfie, domain.DocStatusApproved, 3),
	}
	entries := Summarize(docs)
	require.Len(t, entries, 5)

	seen := map[domain.DocumentType]int{}
	for _, e := range entries {
		seen[e.Type]++
	}
	for _, dt := range domain.RequiredDocumentTypes() {
		assert.Equal(t, 1, seen[dt], dt)
	}
}

func TestSummarizeLatestIsNewestByCreatedAt(t *testing.T) {
	older := doc(domain.DocTypeQualification, domain.DocStatusRejected, 10)
	newer := doc(domain.DocTypeQualification, domain.DocStatusPending, 20)
	e := entryFor(t, Summarize([]domain.TeacherDocument{newer, older}), domain.DocTypeQualification)

	require.NotNil(t, e.Latest)
	assert.Equal(t, newer.ID, e.Latest.ID)
}

func TestSummarizeRejectionOnlySurfacedWhenActionable(t *testing.T) {
	reason := "blurry photo"
	rejected := doc(domain.DocTypeIDDocument, domain.DocStatusRejected, 0)
	rejected.RejectionReason = &reason

	e := entryFor(t, Summarize([]domain.TeacherDocument{rejected}), domain.DocTypeIDDocument)
	assert.False(t, e.HasApproved)
	assert.False(t, e.HasPending)
	require.NotNil(t, e.LatestRejection)
	assert.Equal(t, "blurry photo", *e.LatestRejection.RejectionReason)

	// resubmission supersedes the rejection, the rejected row still exists
	resubmitted := doc(domain.DocTypeIDDocument, domain.DocStatusPending, 5)
	e = entryFor(t, Summarize([]domain.TeacherDocument{rejected, resubmitted}), domain.DocTypeIDDocument)
	assert.True(t, e.HasPending)
	assert.Nil(t, e.LatestRejection)

	approved := doc(domain.DocTypeIDDocument, domain.DocStatusApproved, 6)
	e = entryFor(t, Summarize([]domain.TeacherDocument{rejected, approved}), domain.DocTypeIDDocument)
	assert.True(t, e.HasApproved)
	assert.Nil(t, e.LatestRejection)
}

func TestSummarizePicksNewestRejection(t *testing.T) {
	first := doc(domain.DocTypeCriminalRecord, domain.DocStatusRejected, 0)
	second := doc(domain.DocTypeCriminalRecord, domain.DocStatusRejected, 30)
	e := entryFor(t, Summarize([]domain.TeacherDocument{second, first}), domain.DocTypeCriminalRecord)

	require.NotNil(t, e.LatestRejection)
	assert.Equal(t, second.ID, e.LatestRejection.ID)
}

func TestIsVerified(t *testing.T) {
	var docs []domain.TeacherDocument
	for i, dt := range domain.RequiredDocumentTypes() {
		assert.False(t, IsVerified(docs), "verified before %s approved", dt)
		docs = append(docs, doc(dt, domain.DocStatusApproved, i))
	}
	assert.True(t, IsVerified(docs))
	assert.Empty(t, MissingTypes(docs))

	// extra pending and rejected rows do not undo an approval
	docs = append(docs,
		doc(domain.DocTypeCV, domain.DocStatusPending, 100),
		doc(domain.DocTypeSelfie, domain.DocStatusRejected, 101),
	)
	assert.True(t, IsVerified(docs))
}

func TestIsVerifiedRequiresSelfie(t *testing.T) {
	var docs []domain.TeacherDocument
	for i, dt := range domain.ChecklistDocumentTypes() {
		docs = append(docs, doc(dt, domain.DocStatusApproved, i))
	}
	assert.False(t, IsVerified(docs))
	assert.Equal(t, []domain.DocumentType{domain.DocTypeSelfie}, MissingTypes(docs))
}

func TestCVUploadThenApprove(t *testing.T) {
	cv := doc(domain.DocTypeCV, domain.DocStatusPending, 0)
	docs := []domain.TeacherDocument{cv}

	assert.False(t, IsVerified(docs))
	assert.True(t, entryFor(t, Summarize(docs), domain.DocTypeCV).HasPending)

	docs[0].Status = domain.DocStatusApproved
	assert.False(t, IsVerified(docs))
	e := entryFor(t, Summarize(docs), domain.DocTypeCV)
	assert.True(t, e.HasApproved)
	assert.Nil(t, e.LatestRejection)
	assert.Zero(t, PendingCount(docs))
}

func TestPendingCountCountsRows(t *testing.T) {
	docs := []domain.TeacherDocument{
		doc(domain.DocTypeCV, domain.DocStatusPending, 0),
		doc(domain.DocTypeCV, domain.DocStatusPending, 1),
		doc(domain.DocTypeSelfie, domain.DocStatusPending, 2),
		doc(domain.DocTypeQualification, domain.DocStatusApproved, 3),
		doc(domain.DocTypeIDDocument, domain.DocStatusRejected, 4),
	}
	assert.Equal(t, 3, PendingCount(docs))
	assert.Zero(t, PendingCount(nil))
}

func TestEveryRequiredTypeHasLabel(t *testing.T) {
	for _, dt := range domain.RequiredDocumentTypes() {
		assert.True(t, dt.Valid())
		assert.NotEqual(t, string(dt), dt.Label(), "missing label for %s", dt)
	}
}
