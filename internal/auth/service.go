package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tvbank-assistant-backend/internal/models"
	"tvbank-assistant-backend/internal/repo"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrBranchRequired     = errors.New("branch id required for staff roles")
)

// SignUpInput carries the registration form. Staff roles must name their
// branch; customers must not.
type SignUpInput struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	FullName string          `json:"full_name"`
	Phone    string          `json:"phone"`
	Role     models.UserRole `json:"role"`
	BranchID string          `json:"branch_id"`
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

type Service struct {
	users  repo.UserRepoInterface
	jwt    *JWTService
	bcrypt *BcryptService
}

func NewService(users repo.UserRepoInterface, jwt *JWTService) *Service {
	return &Service{users: users, jwt: jwt, bcrypt: NewBcryptService()}
}

func (s *Service) SignUp(input SignUpInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email")
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	role := input.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && input.BranchID == "" {
		return nil, ErrBranchRequired
	}

	if _, err := s.users.GetUserByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.bcrypt.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		UUID:         uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Phone:        input.Phone,
		Role:         role,
		BranchID:     input.BranchID,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.newSession(user)
}

// SignIn accepts a role-specific identifier (email, phone, employee or
// manager code) and a password.
func (s *Service) SignIn(identifier string, password string) (*Session, error) {
	user, err := s.users.GetUserByEmail(CanonicalEmail(identifier))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.bcrypt.Compare(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(user)
}

func (s *Service) CurrentProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetUserById(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func (s *Service) newSession(user *models.User) (*Session, error) {
	token, expiresAt, err := s.jwt.GenerateToken(user.UUID.String(), string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}
