package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/services/apperr"
	"github.com/temped/temped-api/internal/session"
)

type applicationScene struct {
	f          *fixture
	svc        ApplicationService
	teacher    *session.Session
	teacherRow domain.Teacher
	school     *session.Session
	job        domain.Job
}

func newApplicationScene() *applicationScene {
	f := newFixture()
	lat, lng := at(capeTown)
	teacher, row := f.db.addTeacher(domain.Teacher{FirstName: "Sipho", Surname: "Dlamini", Latitude: lat, Longitude: lng})
	school, s := f.db.addSchool(domain.School{Name: "Paul Roos"})
	job := f.db.addJob(jobAt(s.ID, "Maths locum", &stellenbosch))
	return &applicationScene{f: f, svc: f.applications(), teacher: teacher, teacherRow: row, school: school, job: job}
}

func TestApplyOncePerJob(t *testing.T) {
	sc := newApplicationScene()
	ctx := context.Background()

	out, err := sc.svc.Apply(ctx, sc.teacher, sc.job.ID, dto.ApplyRequest{CoverLetter: " Available from November "})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, out.Status)
	assert.Equal(t, "Available from November", out.CoverLetter)
	require.NotNil(t, out.Job)
	require.NotNil(t, out.Job.DistanceKm)

	_, err = sc.svc.Apply(ctx, sc.teacher, sc.job.ID, dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	mine, err := sc.svc.ListMine(ctx, sc.teacher)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestApplyRules(t *testing.T) {
	sc := newApplicationScene()
	ctx := context.Background()

	closed := jobAt(sc.job.SchoolID, "Closed", nil)
	closed.Status = domain.JobStatusHired
	closed = sc.f.db.addJob(closed)

	_, err := sc.svc.Apply(ctx, sc.teacher, closed.ID, dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = sc.svc.Apply(ctx, sc.teacher, uuid.New(), dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = sc.svc.Apply(ctx, sc.school, sc.job.ID, dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = sc.svc.Apply(ctx, sc.teacher, sc.job.ID, dto.ApplyRequest{CoverLetter: strings.Repeat("x", maxCoverLetterLength+1)})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListForJobOnlyForOwningSchool(t *testing.T) {
	sc := newApplicationScene()
	ctx := context.Background()
	_, err := sc.svc.Apply(ctx, sc.teacher, sc.job.ID, dto.ApplyRequest{})
	require.NoError(t, err)

	list, err := sc.svc.ListForJob(ctx, sc.school, sc.job.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Teacher)
	assert.Equal(t, "Sipho", list[0].Teacher.FirstName)
	require.NotNil(t, list[0].Teacher.DistanceKm)
	assert.InDelta(t, 40.2, *list[0].Teacher.DistanceKm, 0.05)

	other, _ := sc.f.db.addSchool(domain.School{Name: "Bishops"})
	_, err = sc.svc.ListForJob(ctx, other, sc.job.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestSchoolDecidesAndTeacherIsNotified(t *testing.T) {
	sc := newApplicationScene()
	ctx := context.Background()
	app, err := sc.svc.Apply(ctx, sc.teacher, sc.job.ID, dto.ApplyRequest{})
	require.NoError(t, err)

	out, err := sc.svc.SetStatus(ctx, sc.school, app.ID, "ACCEPTED")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusAccepted, out.Status)

	msgs := sc.f.producer.messages()
	require.Len(t, msgs, 1)
	var env dto.Envelope
	require.NoError(t, json.Unmarshal(msgs[0].value, &env))
	assert.Equal(t, dto.EventApplicationStatusChanged, env.Event)

	var ev dto.ApplicationStatusChangedEvent
	require.NoError(t, json.Unmarshal(env.Data, &ev))
	assert.Equal(t, "Maths locum", ev.JobTitle)
	assert.Equal(t, "Paul Roos", ev.SchoolName)
	assert.Equal(t, "sipho@example.com", ev.Email)
	assert.Equal(t, "accepted", ev.Status)

	// same status again does nothing
	_, err = sc.svc.SetStatus(ctx, sc.school, app.ID, "accepted")
	require.NoError(t, err)
	assert.Len(t, sc.f.producer.messages(), 1)
}

func TestSetStatusRoleRules(t *testing.T) {
	sc := newApplicationScene()
	ctx := context.Background()
	app, err := sc.svc.Apply(ctx, sc.teacher, sc.job.ID, dto.ApplyRequest{})
	require.NoError(t, err)

	_, err = sc.svc.SetStatus(ctx, sc.school, app.ID, "withdrawn")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = sc.svc.SetStatus(ctx, sc.teacher, app.ID, "accepted")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	other, _ := sc.f.db.addSchool(domain.School{Name: "Bishops"})
	_, err = sc.svc.SetStatus(ctx, other, app.ID, "rejected")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	stranger, _ := sc.f.db.addTeacher(domain.Teacher{FirstName: "Lerato"})
	_, err = sc.svc.SetStatus(ctx, stranger, app.ID, "withdrawn")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = sc.svc.SetStatus(ctx, sc.f.db.addAdmin(), app.ID, "rejected")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestWithdrawnIsFinal(t *testing.T) {
	sc := newApplicationScene()
	ctx := context.Background()
	app, err := sc.svc.Apply(ctx, sc.teacher, sc.job.ID, dto.ApplyRequest{})
	require.NoError(t, err)

	out, err := sc.svc.SetStatus(ctx, sc.teacher, app.ID, "withdrawn")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusWithdrawn, out.Status)

	_, err = sc.svc.SetStatus(ctx, sc.school, app.ID, "accepted")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	_, err = sc.svc.SetStatus(ctx, sc.teacher, app.ID, "withdrawn")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestShortlistIsIndependentOfStatus(t *testing.T) {
	sc := newApplicationScene()
	ctx := context.Background()
	app, err := sc.svc.Apply(ctx, sc.teacher, sc.job.ID, dto.ApplyRequest{})
	require.NoError(t, err)

	out, err := sc.svc.SetShortlisted(ctx, sc.school, app.ID, true)
	require.NoError(t, err)
	assert.True(t, out.Shortlisted)
	assert.Equal(t, domain.ApplicationStatusPending, out.Status)

	_, err = sc.svc.SetShortlisted(ctx, sc.teacher, app.ID, true)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = sc.svc.SetShortlisted(ctx, sc.school, uuid.New(), true)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
