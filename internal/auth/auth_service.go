package auth

import (
	"context"
	"os"
	"strings"
	"time"

	autherrors "go-payroll/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (accessToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	// SeedDefaultUsers memastikan akun bawaan tersedia saat boot.
	SeedDefaultUsers(ctx context.Context) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{repo: repo, logger: l.Named("auth_service")}
}

func (s *service) Login(ctx context.Context, username, password string) (string, AuthResponse, error) {
	// 1. Ambil user
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// 2. Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// 3. Generate token
	accessToken, err := s.generateToken(user.ID.String(), user.Username, user.Role, time.Hour*8)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role),
	)

	return accessToken, AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	return &AuthResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
	}, nil
}

// defaultUsers dipakai untuk seeding awal. Password diambil dari env
// <USERNAME>_PASSWORD bila tersedia, fallback ke default dev.
var defaultUsers = []struct {
	Username string
	Role     string
	Fallback string
}{
	{Username: "admin", Role: RoleAdmin, Fallback: "admin123"},
	{Username: "accounts", Role: RoleAccounts, Fallback: "accounts123"},
	{Username: "user1", Role: RoleHR, Fallback: "user123"},
	{Username: "super", Role: RoleSuper, Fallback: "super123"},
}

func (s *service) SeedDefaultUsers(ctx context.Context) error {
	for _, du := range defaultUsers {
		if _, err := s.repo.GetByUsername(ctx, du.Username); err == nil {
			continue
		}

		password := os.Getenv(strings.ToUpper(du.Username) + "_PASSWORD")
		if password == "" {
			password = du.Fallback
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := &User{
			ID:       uuid.New(),
			Username: du.Username,
			Password: string(hashed),
			Role:     du.Role,
			IsActive: true,
		}

		if err := s.repo.Create(ctx, user); err != nil {
			// Race dengan instance lain yang seeding bersamaan, aman diabaikan
			if strings.Contains(err.Error(), "duplicate key") {
				continue
			}
			return err
		}

		s.logger.Info("seeded default user",
			zap.String("username", du.Username),
			zap.String("role", du.Role),
		)
	}
	return nil
}

// reusable token generator
func (s *service) generateToken(userID, username, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role, // Role masuk ke JWT supaya bisa dicek di middleware
		"exp":      time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
