package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"petmatch-be/internal/cache"
	"petmatch-be/internal/mailer"
	"petmatch-be/internal/models"
	"petmatch-be/internal/repository"
	"petmatch-be/internal/token"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailSendFailed    = errors.New("failed to send recovery email")
)

// The same wording goes out whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
const recoveryMessage = "If the email exists, a recovery link has been sent"

// AuthService defines the interface for credential lifecycle logic
type AuthService interface {
	Register(req *models.RegisterRequest) error
	Login(req *models.LoginRequest) (*models.LoginResponse, error)
	Profile(email string) (*models.ProfileResponse, error)
	UpdateName(email, newName string) error
	ForgotPassword(email string) (*models.ForgotPasswordResponse, error)
	ResetPassword(email, newPassword string) error
	DeleteAccount(email string) error
}

type authService struct {
	userRepo    repository.UserRepository
	tokens      *token.Service
	mail        mailer.Mailer
	cache       cache.Cache
	frontendURL string
	ctx         context.Context
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokens *token.Service, mail mailer.Mailer, cacheClient cache.Cache, frontendURL string) AuthService {
	return &authService{
		userRepo:    userRepo,
		tokens:      tokens,
		mail:        mail,
		cache:       cacheClient,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		ctx:         context.Background(),
	}
}

// Register creates a new user account
func (s *authService) Register(req *models.RegisterRequest) error {
	if !emailPattern.MatchString(req.Email) {
		return ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.userRepo.Create(req.Name, req.Email, string(hash)); err != nil {
		return err
	}
	return nil
}

// Login verifies the credentials and issues a session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *authService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateSession(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{AccessToken: accessToken}, nil
}

// Profile returns the public profile for the authenticated email
func (s *authService) Profile(email string) (*models.ProfileResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{Name: user.Name, Email: user.Email}, nil
}

// UpdateName renames the authenticated user's profile
func (s *authService) UpdateName(email, newName string) error {
	return s.userRepo.UpdateName(email, newName)
}

// ForgotPassword issues a reset token and mails the recovery link. When
// no mail transport is configured the link is returned in the response
// instead of being silently dropped. Development behavior, not for
// production.
func (s *authService) ForgotPassword(email string) (*models.ForgotPasswordResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return &models.ForgotPasswordResponse{Message: recoveryMessage}, nil
	}
	if err != nil {
		return nil, err
	}

	resetToken, err := s.tokens.GenerateReset(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, resetToken)

	if !s.mail.Configured() {
		log.Printf("Development mode: recovery link for %s: %s", user.Email, resetLink)
		return &models.ForgotPasswordResponse{
			Message:   recoveryMessage,
			ResetLink: resetLink,
		}, nil
	}

	if err := s.mail.SendPasswordReset(user.Email, user.Name, resetLink); err != nil {
		log.Printf("Failed to send recovery email to %s: %v", user.Email, err)
		return nil, ErrEmailSendFailed
	}

	return &models.ForgotPasswordResponse{Message: recoveryMessage}, nil
}

// ResetPassword stores the new password hash for the reset token's subject
func (s *authService) ResetPassword(email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(email, string(hash))
}

// DeleteAccount removes the user and all their animals as one atomic
// unit, then drops any cached copies of the removed listings.
func (s *authService) DeleteAccount(email string) error {
	animalIDs, err := s.userRepo.DeleteWithAnimals(email)
	if err != nil {
		return err
	}

	if s.cache != nil && len(animalIDs) > 0 {
		keys := make([]string, len(animalIDs))
		for i, id := range animalIDs {
			keys[i] = animalCacheKey(id)
		}
		if err := s.cache.Delete(s.ctx, keys...); err != nil {
			log.Printf("Warning: failed to invalidate cached animals: %v", err)
		}
	}

	return nil
}
