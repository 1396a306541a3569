package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/interfaces"
	"github.com/temped/temped-api/internal/repository"
	"github.com/temped/temped-api/internal/services/apperr"
	"github.com/temped/temped-api/internal/session"
	"github.com/temped/temped-api/pkg/utils"
)

var certificateExts = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true}

type SchoolService interface {
	GetMe(ctx context.Context, sess *session.Session) (*dto.SchoolProfileResponse, error)
	UpdateMe(ctx context.Context, sess *session.Session, input dto.SchoolProfileRequest) (*dto.SchoolProfileResponse, error)
	UploadRegistrationCertificate(ctx context.Context, sess *session.Session, file dto.UploadFile) (*dto.SchoolProfileResponse, error)
}

type schoolService struct {
	schools repository.SchoolRepository
	storage interfaces.Storage
	sign    signer
	log     *zap.Logger
}

func NewSchoolService(schools repository.SchoolRepository, storage interfaces.Storage, log *zap.Logger) SchoolService {
	return &schoolService{
		schools: schools,
		storage: storage,
		sign:    signer{storage: storage, log: log},
		log:     log,
	}
}

func currentSchool(ctx context.Context, schools repository.SchoolRepository, sess *session.Session) (*domain.School, error) {
	if err := requireRole(sess, domain.RoleSchool); err != nil {
		return nil, err
	}
	s, err := schools.FindByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, lookupErr(err, "school profile")
	}
	return s, nil
}

func (s *schoolService) GetMe(ctx context.Context, sess *session.Session) (*dto.SchoolProfileResponse, error) {
	school, err := currentSchool(ctx, s.schools, sess)
	if err != nil {
		return nil, err
	}
	out := s.sign.school(ctx, school)
	return &out, nil
}

func (s *schoolService) UpdateMe(ctx context.Context, sess *session.Session, input dto.SchoolProfileRequest) (*dto.SchoolProfileResponse, error) {
	school, err := currentSchool(ctx, s.schools, sess)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}
	emis := strings.TrimSpace(input.EMISNumber)
	if len(emis) > 20 {
		return nil, apperr.Invalid("emis_number is too long")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	school.Name = name
	school.EMISNumber = emis
	school.Description = strings.TrimSpace(input.Description)
	school.Address = strings.TrimSpace(input.Address)
	school.Latitude = input.Latitude
	school.Longitude = input.Longitude
	school.Phone = strings.TrimSpace(input.Phone)

	if err := s.schools.Save(ctx, school); err != nil {
		return nil, fmt.Errorf("save school profile: %w", err)
	}
	out := s.sign.school(ctx, school)
	return &out, nil
}

func (s *schoolService) UploadRegistrationCertificate(ctx context.Context, sess *session.Session, file dto.UploadFile) (*dto.SchoolProfileResponse, error) {
	school, err := currentSchool(ctx, s.schools, sess)
	if err != nil {
		return nil, err
	}

	ext := utils.Ext(file.Name)
	if !certificateExts[ext] {
		return nil, apperr.Invalid("only pdf/jpg/jpeg/png allowed")
	}
	if len(file.Data) == 0 {
		return nil, apperr.Invalid("file is required")
	}
	if len(file.Data) > maxDocumentBytes {
		return nil, apperr.Invalid("file too large (max 10MB)")
	}
	if ext == ".pdf" {
		if _, err := utils.CheckPDF(file.Data); err != nil {
			return nil, apperr.Invalid("%v", err)
		}
	} else if _, err := utils.CheckImage(file.Data); err != nil {
		return nil, apperr.Invalid("unreadable image: %v", err)
	}

	path, undo, err := putObject(ctx, s.storage, s.log, domain.BucketRegistrationCertificates, school.ID, file.Name, file.Data)
	if err != nil {
		return nil, err
	}
	if err := s.schools.SetRegistrationCertificate(ctx, school.ID, &path); err != nil {
		undo()
		return nil, fmt.Errorf("save registration certificate: %w", err)
	}
	dropObject(ctx, s.storage, s.log, domain.BucketRegistrationCertificates, school.RegistrationCertificate)

	school.RegistrationCertificate = &path
	out := s.sign.school(ctx, school)
	return &out, nil
}
