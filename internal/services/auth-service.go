package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/helper"
	"github.com/temped/temped-api/internal/helper/utils"
	"github.com/temped/temped-api/internal/interfaces"
	"github.com/temped/temped-api/internal/repository"
	"github.com/temped/temped-api/internal/services/apperr"
	"github.com/temped/temped-api/internal/session"
)

const minPasswordLength = 8

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterRequest) (*dto.UserProfileResponse, error)
	Login(ctx context.Context, input dto.UserLogin) (*dto.LoginResponse, error)
	Me(ctx context.Context, sess *session.Session) (*dto.UserProfileResponse, error)

	// Admin
	SetRoles(ctx context.Context, sess *session.Session, userID uuid.UUID, input dto.SetRolesRequest) (*dto.UserRolesResponse, error)
	SetStatus(ctx context.Context, sess *session.Session, userID uuid.UUID, status string) error

	// HasRole checks the database, not the token.
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
}

type authService struct {
	profiles     repository.ProfileRepository
	roleRepo     repository.RoleRepository
	userRoleRepo repository.UserRoleRepository
	consentRepo  repository.ConsentRepository
	auth         helper.Auth
	events       publisher
	log          *zap.Logger
}

func NewAuthService(
	profiles repository.ProfileRepository,
	roleRepo repository.RoleRepository,
	userRoleRepo repository.UserRoleRepository,
	consentRepo repository.ConsentRepository,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
	log *zap.Logger,
) AuthService {
	return &authService{
		profiles:     profiles,
		roleRepo:     roleRepo,
		userRoleRepo: userRoleRepo,
		consentRepo:  consentRepo,
		auth:         auth,
		events:       publisher{producer: producer, log: log},
		log:          log,
	}
}

func (a *authService) Register(ctx context.Context, input dto.RegisterRequest) (*dto.UserProfileResponse, error) {
	email, err := utils.NormalizeEmail(input.Email)
	if err != nil {
		return nil, apperr.Invalid("invalid email")
	}
	fullName := strings.TrimSpace(input.FullName)
	role := strings.TrimSpace(strings.ToUpper(input.Role))

	if fullName == "" {
		return nil, apperr.Invalid("full_name is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperr.Invalid("password must be at least %d characters", minPasswordLength)
	}
	if role != domain.RoleTeacher && role != domain.RoleSchool {
		return nil, apperr.Invalid("role must be TEACHER or SCHOOL")
	}
	if !helper.HasConsent(input.ConsentCodes, domain.ConsentTerms) {
		return nil, apperr.Invalid("must accept terms")
	}
	for _, c := range input.ConsentCodes {
		switch strings.ToUpper(strings.TrimSpace(c)) {
		case domain.ConsentTerms, domain.ConsentPOPIA:
		default:
			return nil, apperr.Invalid("unknown consent code %q", c)
		}
	}

	hashed, err := a.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		Email:        email,
		PasswordHash: hashed,
		FullName:     fullName,
		Phone:        trimmedOrNil(derefString(input.Phone)),
		Status:       domain.ProfileStatusActive,
	}
	acc := repository.NewAccount{
		Profile:  profile,
		RoleCode: role,
		Consents: input.ConsentCodes,
	}
	if role == domain.RoleTeacher {
		first, last := splitName(fullName)
		acc.Teacher = &domain.Teacher{FirstName: first, Surname: last, SearchRadiusKm: domain.DefaultSearchRadiusKm}
	} else {
		acc.School = &domain.School{}
	}

	if err := a.profiles.CreateAccount(ctx, acc); err != nil {
		if helper.IsUniqueViolation(err, "") {
			return nil, apperr.Conflicts("email already exists")
		}
		return nil, err
	}

	a.log.Info("user registered", zap.Stringer("user_id", profile.ID), zap.String("role", role))
	a.events.publish(ctx, dto.EventUserRegistered, profile.ID, dto.UserRegisteredEvent{
		UserID:   profile.ID,
		Email:    profile.Email,
		FullName: profile.FullName,
		Role:     role,
	})

	out := toUserProfile(profile, role)
	return &out, nil
}

func (a *authService) Login(ctx context.Context, input dto.UserLogin) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
	}

	user, err := a.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
		}
		return nil, err
	}

	if err := a.auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
	}
	if user.Status != domain.ProfileStatusActive {
		return nil, apperr.Denied("account is not active")
	}

	roles, err := a.userRoleRepo.GetRolesByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	role := primaryRole(roles)
	if role == "" {
		return nil, apperr.Denied("account has no role")
	}

	token, err := a.auth.GenerateToken(user.ID, user.Email, role)
	if err != nil {
		return nil, err
	}

	out := toUserProfile(user, role)
	out.Roles = roleCodes(roles)
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(a.auth.TTL).UTC(),
		User:      out,
	}, nil
}

func (a *authService) Me(ctx context.Context, sess *session.Session) (*dto.UserProfileResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	user, err := a.profiles.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	roles, err := a.userRoleRepo.GetRolesByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	consents, err := a.consentRepo.ListCodes(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := toUserProfile(user, sess.Role)
	out.Roles = roleCodes(roles)
	out.Consents = consents
	return &out, nil
}

func (a *authService) SetRoles(ctx context.Context, sess *session.Session, userID uuid.UUID, input dto.SetRolesRequest) (*dto.UserRolesResponse, error) {
	if err := requireRole(sess, domain.RoleAdmin); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(input.Roles))
	seen := map[string]bool{}
	for _, r := range input.Roles {
		code := strings.ToUpper(strings.TrimSpace(r))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil, apperr.Invalid("roles is required")
	}
	if userID == sess.UserID && !seen[domain.RoleAdmin] {
		return nil, apperr.Invalid("cannot remove your own admin role")
	}

	if _, err := a.profiles.FindByID(ctx, userID); err != nil {
		return nil, lookupErr(err, "user")
	}

	roles, err := a.roleRepo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(codes) {
		return nil, apperr.Invalid("unknown role in %v", codes)
	}

	ids := make([]uuid.UUID, 0, len(roles))
	resp := &dto.UserRolesResponse{UserID: userID, Roles: make([]dto.RoleResponse, 0, len(roles))}
	for _, r := range roles {
		ids = append(ids, r.ID)
		resp.Roles = append(resp.Roles, dto.RoleResponse{ID: r.ID, Code: r.Code, Name: r.Name})
	}
	if err := a.userRoleRepo.ReplaceUserRoles(ctx, userID, ids); err != nil {
		return nil, err
	}

	a.log.Info("roles replaced", zap.Stringer("user_id", userID), zap.Strings("roles", codes), zap.Stringer("by", sess.UserID))
	return resp, nil
}

func (a *authService) SetStatus(ctx context.Context, sess *session.Session, userID uuid.UUID, status string) error {
	if err := requireRole(sess, domain.RoleAdmin); err != nil {
		return err
	}

	status = strings.ToLower(strings.TrimSpace(status))
	if status != domain.ProfileStatusActive && status != domain.ProfileStatusSuspended {
		return apperr.Invalid("status must be active or suspended")
	}
	if userID == sess.UserID {
		return apperr.Invalid("cannot change your own status")
	}

	if err := a.profiles.UpdateStatus(ctx, userID, status); err != nil {
		return lookupErr(err, "user")
	}
	a.log.Info("user status changed", zap.Stringer("user_id", userID), zap.String("status", status), zap.Stringer("by", sess.UserID))
	return nil
}

func (a *authService) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	return a.userRoleRepo.UserHasRole(ctx, userID, role)
}

// primaryRole picks the role carried by the token. ADMIN wins over the
// marketplace roles.
func primaryRole(roles []domain.Role) string {
	best := ""
	rank := map[string]int{domain.RoleTeacher: 1, domain.RoleSchool: 2, domain.RoleAdmin: 3}
	for _, r := range roles {
		if rank[r.Code] > rank[best] {
			best = r.Code
		}
	}
	return best
}

func roleCodes(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.Code)
	}
	return out
}

func toUserProfile(p *domain.Profile, role string) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Status:    p.Status,
		Role:      role,
		CreatedAt: p.CreatedAt,
	}
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
