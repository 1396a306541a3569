package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

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
	maxProfilePictureBytes = 5 << 20
	profilePictureWidth    = 800
	maxSearchRadiusKm      = 500
)

type TeacherService interface {
	GetMe(ctx context.Context, sess *session.Session) (*dto.TeacherProfileResponse, error)
	UpdateMe(ctx context.Context, sess *session.Session, input dto.TeacherProfileRequest) (*dto.TeacherProfileResponse, error)
	PreviewCompleteness(ctx context.Context, sess *session.Session, input dto.CompletenessPreviewRequest) (*dto.CompletenessResponse, error)

	UploadProfilePicture(ctx context.Context, sess *session.Session, file dto.UploadFile) (*dto.TeacherProfileResponse, error)
	RemoveProfilePicture(ctx context.Context, sess *session.Session) error

	AddExperience(ctx context.Context, sess *session.Session, input dto.ExperienceRequest) (*dto.ExperienceResponse, error)
	ListExperiences(ctx context.Context, sess *session.Session) ([]dto.ExperienceResponse, error)
	DeleteExperience(ctx context.Context, sess *session.Session, expID uuid.UUID) error

	// GetByID is the card schools and admins see.
	GetByID(ctx context.Context, sess *session.Session, teacherID uuid.UUID) (*dto.TeacherProfileResponse, error)
}

type teacherService struct {
	teachers     repository.TeacherRepository
	docs         repository.DocumentRepository
	storage      interfaces.Storage
	sign         signer
	completeness completeness
	log          *zap.Logger
}

func NewTeacherService(
	teachers repository.TeacherRepository,
	docs repository.DocumentRepository,
	storage interfaces.Storage,
	log *zap.Logger,
) TeacherService {
	return &teacherService{
		teachers:     teachers,
		docs:         docs,
		storage:      storage,
		sign:         signer{storage: storage, log: log},
		completeness: completeness{teachers: teachers, docs: docs, log: log},
		log:          log,
	}
}

// currentTeacher resolves the teacher row owned by the session.
func currentTeacher(ctx context.Context, teachers repository.TeacherRepository, sess *session.Session) (*domain.Teacher, error) {
	if err := requireRole(sess, domain.RoleTeacher); err != nil {
		return nil, err
	}
	t, err := teachers.FindByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, lookupErr(err, "teacher profile")
	}
	return t, nil
}

func (s *teacherService) GetMe(ctx context.Context, sess *session.Session) (*dto.TeacherProfileResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, t)
}

func (s *teacherService) view(ctx context.Context, t *domain.Teacher) (*dto.TeacherProfileResponse, error) {
	docs, err := s.docs.ListByTeacher(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	out := s.sign.teacher(ctx, t, docs)
	return &out, nil
}

func (s *teacherService) UpdateMe(ctx context.Context, sess *session.Session, input dto.TeacherProfileRequest) (*dto.TeacherProfileResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}
	if err := validateTeacherProfile(&input); err != nil {
		return nil, err
	}

	applyTeacherProfile(t, input)

	docs, err := s.docs.ListByTeacher(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.ProfileCompleteness = computeCompleteness(t, docs)

	if err := s.teachers.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save teacher profile: %w", err)
	}

	out := s.sign.teacher(ctx, t, docs)
	return &out, nil
}

// PreviewCompleteness scores unsaved editor state against the saved
// documents. Nothing is written.
func (s *teacherService) PreviewCompleteness(ctx context.Context, sess *session.Session, input dto.CompletenessPreviewRequest) (*dto.CompletenessResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}
	docs, err := s.docs.ListByTeacher(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	form := verification.ProfileForm{
		FirstName:            input.FirstName,
		Surname:              input.Surname,
		Description:          input.Description,
		EducationPhases:      input.EducationPhases,
		Subjects:             input.Subjects,
		Address:              input.Address,
		IDNumber:             input.IDNumber,
		HasProfilePicture:    t.ProfilePicture != nil && *t.ProfilePicture != "",
		ProfilePictureStaged: input.ProfilePictureStaged,
		RemoveProfilePicture: input.RemoveProfilePicture,
		ExperienceCount:      len(t.Experiences),
		References:           input.References,
	}
	staged := uniqueDocTypes(input.StagedDocumentTypes)

	checks := verification.Checklist(form, docs, staged)
	return &dto.CompletenessResponse{
		Completeness: verification.Completeness(form, docs, staged),
		Checklist:    checks,
	}, nil
}

func (s *teacherService) UploadProfilePicture(ctx context.Context, sess *session.Session, file dto.UploadFile) (*dto.TeacherProfileResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}

	ext := utils.Ext(file.Name)
	if !utils.IsImageExt(ext) {
		return nil, apperr.Invalid("only jpg/jpeg/png/webp allowed")
	}
	if len(file.Data) == 0 {
		return nil, apperr.Invalid("file is required")
	}
	if len(file.Data) > maxProfilePictureBytes {
		return nil, apperr.Invalid("file too large (max 5MB)")
	}

	jpg, err := utils.NormalizeToJPG(file.Data, profilePictureWidth, 85)
	if err != nil {
		return nil, apperr.Invalid("unreadable image: %v", err)
	}

	path, undo, err := putObject(ctx, s.storage, s.log, domain.BucketProfilePictures, t.ID, "picture.jpg", jpg)
	if err != nil {
		return nil, err
	}
	if err := s.teachers.SetProfilePicture(ctx, t.ID, &path); err != nil {
		undo()
		return nil, fmt.Errorf("save profile picture: %w", err)
	}
	dropObject(ctx, s.storage, s.log, domain.BucketProfilePictures, t.ProfilePicture)

	t.ProfilePicture = &path
	s.completeness.refresh(ctx, t.ID)
	return s.reload(ctx, t.ID)
}

func (s *teacherService) RemoveProfilePicture(ctx context.Context, sess *session.Session) error {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return err
	}
	if t.ProfilePicture == nil {
		return nil
	}

	if err := s.teachers.SetProfilePicture(ctx, t.ID, nil); err != nil {
		return fmt.Errorf("clear profile picture: %w", err)
	}
	dropObject(ctx, s.storage, s.log, domain.BucketProfilePictures, t.ProfilePicture)
	s.completeness.refresh(ctx, t.ID)
	return nil
}

func (s *teacherService) AddExperience(ctx context.Context, sess *session.Session, input dto.ExperienceRequest) (*dto.ExperienceResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}

	schoolName := strings.TrimSpace(input.SchoolName)
	position := strings.TrimSpace(input.Position)
	if schoolName == "" || position == "" {
		return nil, apperr.Invalid("school_name and position are required")
	}
	start, err := parseDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", input.EndDate)
	if err != nil {
		return nil, err
	}
	if end != nil && end.Before(start) {
		return nil, apperr.Invalid("end_date must not be before start_date")
	}

	exp := &domain.TeacherExperience{
		TeacherID:   t.ID,
		SchoolName:  schoolName,
		Position:    position,
		StartDate:   start,
		EndDate:     end,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.teachers.AddExperience(ctx, exp); err != nil {
		return nil, fmt.Errorf("add experience: %w", err)
	}

	s.completeness.refresh(ctx, t.ID)
	out := toExperienceResponse(*exp)
	return &out, nil
}

func (s *teacherService) ListExperiences(ctx context.Context, sess *session.Session) ([]dto.ExperienceResponse, error) {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return nil, err
	}
	exps, err := s.teachers.ListExperiences(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExperienceResponse, 0, len(exps))
	for _, e := range exps {
		out = append(out, toExperienceResponse(e))
	}
	return out, nil
}

func (s *teacherService) DeleteExperience(ctx context.Context, sess *session.Session, expID uuid.UUID) error {
	t, err := currentTeacher(ctx, s.teachers, sess)
	if err != nil {
		return err
	}
	if err := s.teachers.DeleteExperience(ctx, t.ID, expID); err != nil {
		return lookupErr(err, "experience")
	}
	s.completeness.refresh(ctx, t.ID)
	return nil
}

func (s *teacherService) GetByID(ctx context.Context, sess *session.Session, teacherID uuid.UUID) (*dto.TeacherProfileResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	t, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		return nil, lookupErr(err, "teacher")
	}

	out, err := s.view(ctx, t)
	if err != nil {
		return nil, err
	}
	if !sess.HasRole(domain.RoleAdmin) && t.UserID != sess.UserID {
		out.IDNumber = ""
	}
	return out, nil
}

func (s *teacherService) reload(ctx context.Context, teacherID uuid.UUID) (*dto.TeacherProfileResponse, error) {
	t, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		return nil, lookupErr(err, "teacher")
	}
	return s.view(ctx, t)
}

func validateTeacherProfile(in *dto.TeacherProfileRequest) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Address = strings.TrimSpace(in.Address)
	in.IDNumber = strings.TrimSpace(in.IDNumber)

	if len(in.IDNumber) > 20 {
		return apperr.Invalid("id_number is too long")
	}
	for _, p := range in.EducationPhases {
		if !domain.ValidEducationPhase(p) {
			return apperr.Invalid("unknown education phase %q", p)
		}
	}
	for p := range in.Subjects {
		if !domain.ValidEducationPhase(p) {
			return apperr.Invalid("subjects: unknown education phase %q", p)
		}
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return err
	}
	if in.SearchRadiusKm != nil && (*in.SearchRadiusKm < 1 || *in.SearchRadiusKm > maxSearchRadiusKm) {
		return apperr.Invalid("search_radius_km must be between 1 and %d", maxSearchRadiusKm)
	}
	for i, r := range in.References {
		if strings.TrimSpace(r.Email) == "" {
			continue
		}
		if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
			return apperr.Invalid("teacher_references[%d]: invalid email", i)
		}
	}
	return nil
}

func applyTeacherProfile(t *domain.Teacher, in dto.TeacherProfileRequest) {
	t.FirstName = in.FirstName
	t.Surname = in.Surname
	t.Description = strings.TrimSpace(in.Description)
	t.EducationPhases = in.EducationPhases
	t.Subjects = datatypes.NewJSONType(in.Subjects)
	t.Address = in.Address
	t.Latitude = in.Latitude
	t.Longitude = in.Longitude
	if in.SearchRadiusKm != nil {
		t.SearchRadiusKm = *in.SearchRadiusKm
	}
	if t.SearchRadiusKm == 0 {
		t.SearchRadiusKm = domain.DefaultSearchRadiusKm
	}
	t.IDNumber = in.IDNumber

	refs := make([]domain.TeacherReference, 0, len(in.References))
	for _, r := range in.References {
		refs = append(refs, domain.TeacherReference{
			Name:         strings.TrimSpace(r.Name),
			Email:        strings.TrimSpace(r.Email),
			Phone:        strings.TrimSpace(r.Phone),
			Relationship: strings.TrimSpace(r.Relationship),
		})
	}
	t.TeacherReferences = datatypes.NewJSONType(refs)
}
