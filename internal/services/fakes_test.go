package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/repository"
	"github.com/temped/temped-api/internal/session"
)

// memDB backs every fake repository so services see one consistent store.
// Reads return copies, the way rows come back from postgres.
type memDB struct {
	mu sync.Mutex

	profiles     map[uuid.UUID]domain.Profile
	roles        map[string]domain.Role
	userRoles    map[uuid.UUID][]uuid.UUID
	consents     map[uuid.UUID][]string
	teachers     map[uuid.UUID]domain.Teacher
	experiences  map[uuid.UUID][]domain.TeacherExperience
	docs         map[uuid.UUID]domain.TeacherDocument
	schools      map[uuid.UUID]domain.School
	jobs         map[uuid.UUID]domain.Job
	apps         map[uuid.UUID]domain.Application
	testimonials map[uuid.UUID]domain.Testimonial

	failDocCreate     error
	failSetPicture    error
	completenessSaves int
}

func newMemDB() *memDB {
	db := &memDB{
		profiles:     map[uuid.UUID]domain.Profile{},
		roles:        map[string]domain.Role{},
		userRoles:    map[uuid.UUID][]uuid.UUID{},
		consents:     map[uuid.UUID][]string{},
		teachers:     map[uuid.UUID]domain.Teacher{},
		experiences:  map[uuid.UUID][]domain.TeacherExperience{},
		docs:         map[uuid.UUID]domain.TeacherDocument{},
		schools:      map[uuid.UUID]domain.School{},
		jobs:         map[uuid.UUID]domain.Job{},
		apps:         map[uuid.UUID]domain.Application{},
		testimonials: map[uuid.UUID]domain.Testimonial{},
	}
	for _, code := range domain.RoleCodes {
		db.roles[code] = domain.Role{Base: domain.Base{ID: uuid.New()}, Code: code, Name: code}
	}
	return db
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func stamp(b *domain.Base) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// ---------- seeding helpers ----------

func (db *memDB) addTeacher(t domain.Teacher) (*session.Session, domain.Teacher) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p := domain.Profile{Email: strings.ToLower(t.FirstName) + "@example.com", FullName: t.FirstName + " " + t.Surname, Status: domain.ProfileStatusActive}
	stamp(&p.Base)
	db.profiles[p.ID] = p
	db.userRoles[p.ID] = []uuid.UUID{db.roles[domain.RoleTeacher].ID}

	t.UserID = p.ID
	stamp(&t.Base)
	if t.SearchRadiusKm == 0 {
		t.SearchRadiusKm = domain.DefaultSearchRadiusKm
	}
	db.teachers[t.ID] = t
	return &session.Session{UserID: p.ID, Email: p.Email, Role: domain.RoleTeacher}, t
}

func (db *memDB) addSchool(s domain.School) (*session.Session, domain.School) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p := domain.Profile{Email: strings.ReplaceAll(strings.ToLower(s.Name), " ", "") + "@school.example.com", FullName: s.Name, Status: domain.ProfileStatusActive}
	stamp(&p.Base)
	db.profiles[p.ID] = p
	db.userRoles[p.ID] = []uuid.UUID{db.roles[domain.RoleSchool].ID}

	s.UserID = p.ID
	stamp(&s.Base)
	db.schools[s.ID] = s
	return &session.Session{UserID: p.ID, Email: p.Email, Role: domain.RoleSchool}, s
}

func (db *memDB) addAdmin() *session.Session {
	db.mu.Lock()
	defer db.mu.Unlock()
	p := domain.Profile{Email: "admin@example.com", FullName: "Admin", Status: domain.ProfileStatusActive}
	stamp(&p.Base)
	db.profiles[p.ID] = p
	db.userRoles[p.ID] = []uuid.UUID{db.roles[domain.RoleAdmin].ID}
	return &session.Session{UserID: p.ID, Email: p.Email, Role: domain.RoleAdmin}
}

func (db *memDB) addJob(j domain.Job) domain.Job {
	db.mu.Lock()
	defer db.mu.Unlock()
	stamp(&j.Base)
	if j.Status == "" {
		j.Status = domain.JobStatusOpen
	}
	db.jobs[j.ID] = j
	return j
}

func (db *memDB) addDoc(d domain.TeacherDocument) domain.TeacherDocument {
	db.mu.Lock()
	defer db.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.Status == "" {
		d.Status = domain.DocStatusPending
	}
	db.docs[d.ID] = d
	return d
}

func (db *memDB) teacher(id uuid.UUID) domain.Teacher {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.teachers[id]
}

func (db *memDB) doc(id uuid.UUID) (domain.TeacherDocument, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	d, ok := db.docs[id]
	return d, ok
}

// ---------- profiles / roles / consents ----------

type fakeProfiles struct{ db *memDB }

func (r fakeProfiles) CreateAccount(ctx context.Context, acc repository.NewAccount) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.profiles {
		if p.Email == acc.Profile.Email {
			return uniqueViolation("idx_profiles_email")
		}
	}
	role, ok := r.db.roles[acc.RoleCode]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stamp(&acc.Profile.Base)
	r.db.profiles[acc.Profile.ID] = *acc.Profile
	r.db.userRoles[acc.Profile.ID] = []uuid.UUID{role.ID}
	for _, c := range acc.Consents {
		r.db.consents[acc.Profile.ID] = append(r.db.consents[acc.Profile.ID], strings.ToUpper(c))
	}
	if acc.Teacher != nil {
		acc.Teacher.UserID = acc.Profile.ID
		stamp(&acc.Teacher.Base)
		r.db.teachers[acc.Teacher.ID] = *acc.Teacher
	}
	if acc.School != nil {
		acc.School.UserID = acc.Profile.ID
		stamp(&acc.School.Base)
		r.db.schools[acc.School.ID] = *acc.School
	}
	return nil
}

func (r fakeProfiles) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeProfiles) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r fakeProfiles) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.profiles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	r.db.profiles[id] = p
	return nil
}

type fakeRoles struct{ db *memDB }

func (r fakeRoles) Seed(ctx context.Context, codes []string) error { return nil }

func (r fakeRoles) FindByCode(ctx context.Context, code string) (*domain.Role, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	role, ok := r.db.roles[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &role, nil
}

func (r fakeRoles) FindByCodes(ctx context.Context, codes []string) ([]domain.Role, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Role
	for _, c := range codes {
		if role, ok := r.db.roles[c]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r fakeRoles) List(ctx context.Context) ([]domain.Role, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Role
	for _, role := range r.db.roles {
		out = append(out, role)
	}
	return out, nil
}

type fakeUserRoles struct{ db *memDB }

func (r fakeUserRoles) ReplaceUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.userRoles[userID] = append([]uuid.UUID(nil), roleIDs...)
	return nil
}

func (r fakeUserRoles) GetRolesByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Role, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Role
	for _, id := range r.db.userRoles[userID] {
		for _, role := range r.db.roles {
			if role.ID == id {
				out = append(out, role)
			}
		}
	}
	return out, nil
}

func (r fakeUserRoles) UserHasRole(ctx context.Context, userID uuid.UUID, roleCode string) (bool, error) {
	roles, _ := r.GetRolesByUserID(ctx, userID)
	for _, role := range roles {
		if role.Code == roleCode {
			return true, nil
		}
	}
	return false, nil
}

type fakeConsents struct{ db *memDB }

func (r fakeConsents) CreateConsent(ctx context.Context, c *domain.UserConsent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.consents[c.UserID] = append(r.db.consents[c.UserID], c.ConsentCode)
	return nil
}

func (r fakeConsents) ListCodes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return append([]string{}, r.db.consents[userID]...), nil
}

// ---------- teachers / documents ----------

type fakeTeachers struct{ db *memDB }

func (r fakeTeachers) withExperiences(t domain.Teacher) *domain.Teacher {
	exps := append([]domain.TeacherExperience(nil), r.db.experiences[t.ID]...)
	sort.Slice(exps, func(i, j int) bool { return exps[i].StartDate.After(exps[j].StartDate) })
	t.Experiences = exps
	return &t
}

func (r fakeTeachers) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Teacher, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, t := range r.db.teachers {
		if t.UserID == userID {
			return r.withExperiences(t), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeTeachers) FindByID(ctx context.Context, id uuid.UUID) (*domain.Teacher, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.teachers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withExperiences(t), nil
}

func (r fakeTeachers) Save(ctx context.Context, t *domain.Teacher) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *t
	cp.Experiences = nil
	r.db.teachers[t.ID] = cp
	return nil
}

func (r fakeTeachers) SetProfilePicture(ctx context.Context, teacherID uuid.UUID, path *string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failSetPicture != nil {
		return r.db.failSetPicture
	}
	t := r.db.teachers[teacherID]
	t.ProfilePicture = path
	r.db.teachers[teacherID] = t
	return nil
}

func (r fakeTeachers) SetCompleteness(ctx context.Context, teacherID uuid.UUID, value int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t := r.db.teachers[teacherID]
	t.ProfileCompleteness = value
	r.db.teachers[teacherID] = t
	r.db.completenessSaves++
	return nil
}

func (r fakeTeachers) AddExperience(ctx context.Context, exp *domain.TeacherExperience) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stamp(&exp.Base)
	r.db.experiences[exp.TeacherID] = append(r.db.experiences[exp.TeacherID], *exp)
	return nil
}

func (r fakeTeachers) ListExperiences(ctx context.Context, teacherID uuid.UUID) ([]domain.TeacherExperience, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.withExperiences(domain.Teacher{Base: domain.Base{ID: teacherID}}).Experiences, nil
}

func (r fakeTeachers) DeleteExperience(ctx context.Context, teacherID, expID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	exps := r.db.experiences[teacherID]
	for i, e := range exps {
		if e.ID == expID {
			r.db.experiences[teacherID] = append(exps[:i], exps[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeDocs struct{ db *memDB }

func (r fakeDocs) Create(ctx context.Context, doc *domain.TeacherDocument) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failDocCreate != nil {
		return r.db.failDocCreate
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = time.Now().UTC()
	r.db.docs[doc.ID] = *doc
	return nil
}

func (r fakeDocs) FindByID(ctx context.Context, id uuid.UUID) (*domain.TeacherDocument, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r fakeDocs) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]domain.TeacherDocument, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.TeacherDocument
	for _, d := range r.db.docs {
		if d.TeacherID == teacherID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r fakeDocs) DeletePending(ctx context.Context, teacherID, docID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.docs[docID]
	if !ok || d.TeacherID != teacherID {
		return gorm.ErrRecordNotFound
	}
	if d.Status != domain.DocStatusPending {
		return repository.ErrNotPending
	}
	delete(r.db.docs, docID)
	return nil
}

func (r fakeDocs) pending() []domain.TeacherDocument {
	var out []domain.TeacherDocument
	for _, d := range r.db.docs {
		if d.Status == domain.DocStatusPending {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r fakeDocs) ListPending(ctx context.Context, limit, offset int) ([]domain.TeacherDocument, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := r.pending()
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeDocs) CountPending(ctx context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.pending())), nil
}

func (r fakeDocs) Review(ctx context.Context, rv repository.Review) (*domain.TeacherDocument, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.docs[rv.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if d.Status != domain.DocStatusPending {
		return nil, repository.ErrNotPending
	}
	d.Status = domain.DocStatusRejected
	if rv.Approve {
		d.Status = domain.DocStatusApproved
	}
	d.ReviewedBy = &rv.ReviewerID
	at := rv.At
	d.ReviewedAt = &at
	d.RejectionReason = rv.Reason
	r.db.docs[d.ID] = d
	return &d, nil
}

// ---------- schools / jobs / applications ----------

type fakeSchools struct{ db *memDB }

func (r fakeSchools) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.School, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.schools {
		if s.UserID == userID {
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeSchools) FindByID(ctx context.Context, id uuid.UUID) (*domain.School, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.schools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r fakeSchools) Save(ctx context.Context, s *domain.School) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.schools[s.ID] = *s
	return nil
}

func (r fakeSchools) SetRegistrationCertificate(ctx context.Context, schoolID uuid.UUID, path *string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.schools[schoolID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.RegistrationCertificate = path
	r.db.schools[schoolID] = s
	return nil
}

type fakeJobs struct{ db *memDB }

func (r fakeJobs) attach(j domain.Job) *domain.Job {
	if s, ok := r.db.schools[j.SchoolID]; ok {
		j.School = &s
	}
	return &j
}

func (r fakeJobs) Create(ctx context.Context, job *domain.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stamp(&job.Base)
	cp := *job
	cp.School = nil
	r.db.jobs[job.ID] = cp
	return nil
}

func (r fakeJobs) Save(ctx context.Context, job *domain.Job) error {
	return r.Create(ctx, job)
}

func (r fakeJobs) FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	j, ok := r.db.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.attach(j), nil
}

func (r fakeJobs) List(ctx context.Context, f repository.JobFilter) ([]domain.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Job
	for _, j := range r.db.jobs {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.SchoolID != nil && j.SchoolID != *f.SchoolID {
			continue
		}
		if f.Phase != "" && j.EducationPhase != f.Phase {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, *r.attach(j))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r fakeJobs) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	j, ok := r.db.jobs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	j.Status = status
	r.db.jobs[id] = j
	return nil
}

type fakeApps struct{ db *memDB }

func (r fakeApps) Create(ctx context.Context, app *domain.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if a.JobID == app.JobID && a.TeacherID == app.TeacherID {
			return uniqueViolation("uidx_applications_job_teacher")
		}
	}
	stamp(&app.Base)
	r.db.apps[app.ID] = *app
	return nil
}

func (r fakeApps) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if j, ok := r.db.jobs[a.JobID]; ok {
		a.Job = &j
	}
	return &a, nil
}

func (r fakeApps) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Application
	for _, a := range r.db.apps {
		if a.JobID == jobID {
			if t, ok := r.db.teachers[a.TeacherID]; ok {
				a.Teacher = &t
			}
			out = append(out, a)
		}
	}
	return out, nil
}

func (r fakeApps) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]domain.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Application
	for _, a := range r.db.apps {
		if a.TeacherID == teacherID {
			if j, ok := r.db.jobs[a.JobID]; ok {
				a.Job = fakeJobs{r.db}.attach(j)
			}
			out = append(out, a)
		}
	}
	return out, nil
}

func (r fakeApps) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	r.db.apps[id] = a
	return nil
}

func (r fakeApps) SetShortlisted(ctx context.Context, id uuid.UUID, shortlisted bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Shortlisted = shortlisted
	r.db.apps[id] = a
	return nil
}

// ---------- testimonials ----------

type fakeTestimonials struct{ db *memDB }

func (r fakeTestimonials) Create(ctx context.Context, t *domain.Testimonial) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stamp(&t.Base)
	r.db.testimonials[t.ID] = *t
	return nil
}

func (r fakeTestimonials) ListByStatus(ctx context.Context, status domain.TestimonialStatus, limit, offset int) ([]domain.Testimonial, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Testimonial
	for _, t := range r.db.testimonials {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r fakeTestimonials) Review(ctx context.Context, rv repository.Review) (*domain.Testimonial, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.testimonials[rv.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if t.Status != domain.TestimonialPending {
		return nil, repository.ErrNotPending
	}
	t.Status = domain.TestimonialRejected
	if rv.Approve {
		t.Status = domain.TestimonialApproved
	}
	t.ReviewedBy = &rv.ReviewerID
	at := rv.At
	t.ReviewedAt = &at
	r.db.testimonials[t.ID] = t
	return &t, nil
}

// ---------- storage / broker ----------

type fakeStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte
	removed  []string
	failWith error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(ctx context.Context, bucket, path string, b []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return "", s.failWith
	}
	s.objects[bucket+"/"+path] = b
	return path, nil
}

func (s *fakeStorage) Remove(ctx context.Context, bucket string, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		delete(s.objects, bucket+"/"+p)
		s.removed = append(s.removed, bucket+"/"+p)
	}
	return nil
}

func (s *fakeStorage) SignedURL(ctx context.Context, bucket, path string) (string, error) {
	return "https://files.example.com/" + bucket + "/" + path + "?sig=test", nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type sentMessage struct {
	key   string
	value []byte
}

type fakeProducer struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (p *fakeProducer) PublishMessage(ctx context.Context, key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, sentMessage{key: string(key), value: value})
	return nil
}

func (p *fakeProducer) messages() []sentMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]sentMessage(nil), p.sent...)
}

var errBoom = errors.New("boom")

// fixture wires every service against one memDB.
type fixture struct {
	db       *memDB
	storage  *fakeStorage
	producer *fakeProducer
	log      *zap.Logger
}

func newFixture() *fixture {
	return &fixture{
		db:       newMemDB(),
		storage:  newFakeStorage(),
		producer: &fakeProducer{},
		log:      zap.NewNop(),
	}
}

func (f *fixture) documents() DocumentService {
	return NewDocumentService(fakeDocs{f.db}, fakeTeachers{f.db}, fakeProfiles{f.db}, f.storage, f.producer, f.log)
}

func (f *fixture) teachers() TeacherService {
	return NewTeacherService(fakeTeachers{f.db}, fakeDocs{f.db}, f.storage, f.log)
}

func (f *fixture) jobs() JobService {
	return NewJobService(fakeJobs{f.db}, fakeSchools{f.db}, fakeTeachers{f.db}, f.log)
}

func (f *fixture) applications() ApplicationService {
	return NewApplicationService(fakeApps{f.db}, fakeJobs{f.db}, fakeTeachers{f.db}, fakeSchools{f.db}, fakeProfiles{f.db}, f.producer, f.log)
}

func (f *fixture) testimonials() TestimonialService {
	return NewTestimonialService(fakeTestimonials{f.db}, fakeProfiles{f.db}, fakeSchools{f.db}, f.log)
}

func (f *fixture) schools() SchoolService {
	return NewSchoolService(fakeSchools{f.db}, f.storage, f.log)
}
