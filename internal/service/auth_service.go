package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"campdirectory/internal/apperror"
	"campdirectory/internal/config"
	"campdirectory/internal/logger"
	"campdirectory/internal/mailer"
	"campdirectory/internal/models"
	"campdirectory/internal/repository"
)

const resetTokenBytes = 20

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	UpdateDetails(ctx context.Context, userID string, req models.UpdateDetailsRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) (string, error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest, resetURL string) error
	ResetPassword(ctx context.Context, resetToken string, req models.ResetPasswordRequest) (string, error)
	GenerateToken(user *models.User) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	mail     mailer.Mailer
	validate *validator.Validate
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, mail mailer.Mailer, validate *validator.Validate, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		mail:     mail,
		validate: validate,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	if err := validateEntity(s.validate, req); err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, "", storeError(err, "")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	logger.FromContext(ctx).WithField("user", user.ID).Info("Account registered")
	return user, token, nil
}

// Login does not reveal whether the email or the password was wrong.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", apperror.NewValidation("Please provide an email and password")
	}

	user, err := s.userRepo.VerifyPassword(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidPassword) {
			return nil, "", apperror.New(apperror.Unauthenticated, "Invalid credentials", err)
		}
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Authenticate resolves a bearer token to the account it was issued for.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	unauthorized := func(err error) error {
		return apperror.New(apperror.Unauthenticated, "Not authorized to access this route", err)
	}

	if token == "" {
		return nil, unauthorized(nil)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, unauthorized(err)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, unauthorized(err)
	}

	return user, nil
}

func (s *authService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpire)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *authService) UpdateDetails(ctx context.Context, userID string, req models.UpdateDetailsRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found with id of "+userID)
	}

	req.Apply(user)
	if err := validateEntity(s.validate, user); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, storeError(err, "User not found with id of "+userID)
	}

	return user, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) (string, error) {
	if err := validateEntity(s.validate, req); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return "", storeError(err, "User not found with id of "+userID)
	}

	if _, err := s.userRepo.VerifyPassword(ctx, user.Email, req.CurrentPassword); err != nil {
		if errors.Is(err, repository.ErrInvalidPassword) {
			return "", apperror.New(apperror.Unauthenticated, "Password is incorrect", err)
		}
		return "", storeError(err, "User not found with id of "+userID)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, req.NewPassword); err != nil {
		return "", storeError(err, "User not found with id of "+userID)
	}

	return s.GenerateToken(user)
}

// ForgotPassword mails a single-use token. Only its sha256 digest is stored.
// resetURL is the address the token is appended to.
func (s *authService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest, resetURL string) error {
	if err := validateEntity(s.validate, req); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return storeError(err, "There is no user with that email")
	}

	resetToken, err := newResetToken()
	if err != nil {
		return err
	}

	hashed := hashResetToken(resetToken)
	expire := time.Now().Add(s.cfg.ResetTokenDuration)
	if err := s.userRepo.SetResetToken(ctx, user.ID, &hashed, &expire); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	msg := mailer.Message{
		To:      user.Email,
		Subject: "Password reset token",
		Body: "You are receiving this email because you (or someone else) has requested the reset of a password. " +
			"Please make a PUT request to: \n\n " + resetURL + resetToken,
	}

	if err := s.mail.Send(ctx, msg); err != nil {
		log := logger.FromContext(ctx).WithField("user", user.ID)
		log.WithError(err).Error("Failed to send reset email")

		if clearErr := s.userRepo.SetResetToken(ctx, user.ID, nil, nil); clearErr != nil {
			log.WithError(clearErr).Error("Failed to clear reset token")
		}
		return apperror.NewUpstream("Email could not be sent", err)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, resetToken string, req models.ResetPasswordRequest) (string, error) {
	if err := validateEntity(s.validate, req); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetUserByResetToken(ctx, hashResetToken(resetToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperror.New(apperror.Validation, "Invalid token", err)
		}
		return "", err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, req.Password); err != nil {
		return "", storeError(err, "Invalid token")
	}

	return s.GenerateToken(user)
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
