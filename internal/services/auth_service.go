package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskmgr/taskmanager-api/internal/constants"
	"github.com/taskmgr/taskmanager-api/internal/models"
	"github.com/taskmgr/taskmanager-api/internal/repository"
	"github.com/taskmgr/taskmanager-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidProfession    = errors.New("invalid profession")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidToken         = errors.New("invalid or revoked token")
	ErrNoActiveToken        = errors.New("no active token")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// AuthService handles registration, credential verification, and the token
// lifecycle.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Profession models.Profession
}

// Register creates a new user and issues a fresh token for them.
func (s *AuthService) Register(input RegisterInput) (*models.User, *models.AuthToken, error) {
	// Stored lowercased so the unique index on email serializes concurrent
	// registrations across case variants, not just exact duplicates.
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, nil, ErrPasswordTooShort
	}
	if !input.Profession.Valid() {
		return nil, nil, ErrInvalidProfession
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         input.Name,
		Profession:   input.Profession,
	}

	if err := s.userRepo.Create(user); err != nil {
		// The unique index on email serializes concurrent registrations;
		// the loser of the race lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

// Login verifies credentials and returns the user together with their live
// token, issuing one if none exists. Unknown email and wrong password return
// the same error so callers cannot tell which one failed.
func (s *AuthService) Login(email, password string) (*models.User, *models.AuthToken, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

// ResolveToken maps a presented token key back to its user. Revoked or
// unknown keys fail with ErrInvalidToken.
func (s *AuthService) ResolveToken(key string) (*models.User, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}

	token, err := s.tokenRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	return &token.User, nil
}

// Logout revokes the user's live token. Returns ErrNoActiveToken if the user
// holds none; after a successful logout the old key never resolves again.
func (s *AuthService) Logout(userID uint64) error {
	token, err := s.tokenRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveToken
		}
		return fmt.Errorf("failed to find token: %w", err)
	}

	if err := s.tokenRepo.Delete(token.ID); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// issueToken returns the user's existing live token or creates a new one.
// At most one token exists per user; the unique index on user_id backs the
// invariant under concurrent logins.
func (s *AuthService) issueToken(userID uint64) (*models.AuthToken, error) {
	token, err := s.tokenRepo.FindByUserID(userID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find token: %w", err)
	}

	key, err := utils.GenerateTokenKey()
	if err != nil {
		return nil, ErrFailedToIssueToken
	}

	token = &models.AuthToken{
		Key:    key,
		UserID: userID,
	}

	if err := s.tokenRepo.Create(token); err != nil {
		// Lost a race against a concurrent login; use the winner's token.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.tokenRepo.FindByUserID(userID)
		}
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return token, nil
}
