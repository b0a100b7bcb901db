package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

const (
	minNameLen             = 2
	minRegisterPasswordLen = 6
	minProvisionPassLen    = 8
)

// emailValidator checks addresses on paths that never pass through the HTTP
// binder, such as the create-admin command.
var emailValidator = validator.New()

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a translator account. Self-registration never yields an
// admin.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return createUser(ctx, s.repo, name, email, password, domain.RoleTranslator, minRegisterPasswordLen)
}

// CreateAdmin provisions an administrator. It is only reachable from the
// create-admin command, never over HTTP.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	return createUser(ctx, s.repo, name, email, password, domain.RoleAdmin, minProvisionPassLen)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := checkPassword(user.PasswordHash, password); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  string(user.Role),
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// createUser validates and stores a new account with a bcrypt hash.
func createUser(ctx context.Context, repo ports.UserRepository, name, email, password string, role domain.Role, minPassword int) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	verr := &domain.ValidationError{}
	if len([]rune(name)) < minNameLen {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "name", Message: "must be at least 2 characters"})
	}
	if err := emailValidator.Var(email, "required,email"); err != nil {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "email", Message: "must be a valid email"})
	}
	if len(password) < minPassword {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "password", Message: "is too short"})
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
