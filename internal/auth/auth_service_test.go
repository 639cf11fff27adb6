package auth_test

import (
	"context"
	"testing"

	"go-payroll/internal/auth"
	autherrors "go-payroll/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepository struct {
	createFn        func(ctx context.Context, user *auth.User) error
	getByUsernameFn func(ctx context.Context, username string) (*auth.User, error)
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	return f.createFn(ctx, user)
}

func (f *fakeAuthRepository) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return f.getByIDFn(ctx, id)
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues token with role claim", func(t *testing.T) {
		userID := uuid.New()
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				assert.Equal(t, "accounts", username)
				return &auth.User{
					ID:       userID,
					Username: "accounts",
					Password: hashPassword(t, "accounts123"),
					Role:     auth.RoleAccounts,
					IsActive: true,
				}, nil
			},
		}

		svc := auth.NewService(repo)
		token, resp, err := svc.Login(context.Background(), "accounts", "accounts123")

		assert.NoError(t, err)
		assert.Equal(t, userID.String(), resp.ID)
		assert.Equal(t, auth.RoleAccounts, resp.Role)

		parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, userID.String(), claims["user_id"])
		assert.Equal(t, "accounts", claims["username"])
		assert.Equal(t, auth.RoleAccounts, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				return &auth.User{
					ID:       uuid.New(),
					Username: "admin",
					Password: hashPassword(t, "admin123"),
					Role:     auth.RoleAdmin,
					IsActive: true,
				}, nil
			},
		}

		svc := auth.NewService(repo)
		_, _, err := svc.Login(context.Background(), "admin", "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				return nil, assert.AnError
			},
		}

		svc := auth.NewService(repo)
		_, _, err := svc.Login(context.Background(), "ghost", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive user rejected", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				return &auth.User{
					ID:       uuid.New(),
					Username: "admin",
					Password: hashPassword(t, "admin123"),
					Role:     auth.RoleAdmin,
					IsActive: false,
				}, nil
			},
		}

		svc := auth.NewService(repo)
		_, _, err := svc.Login(context.Background(), "admin", "admin123")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userID := uuid.New()
		repo := &fakeAuthRepository{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				assert.Equal(t, userID, id)
				return &auth.User{ID: userID, Username: "user1", Role: auth.RoleHR}, nil
			},
		}

		svc := auth.NewService(repo)
		resp, err := svc.GetMe(context.Background(), userID.String())

		assert.NoError(t, err)
		assert.Equal(t, "user1", resp.Username)
		assert.Equal(t, auth.RoleHR, resp.Role)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})
		_, err := svc.GetMe(context.Background(), "bukan-uuid")

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})
}

func TestAuthService_SeedDefaultUsers(t *testing.T) {
	t.Run("creates only missing users", func(t *testing.T) {
		var created []string
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				if username == "admin" {
					return &auth.User{Username: "admin"}, nil
				}
				return nil, assert.AnError
			},
			createFn: func(ctx context.Context, user *auth.User) error {
				assert.True(t, user.IsActive)
				assert.NotEmpty(t, user.Password)
				created = append(created, user.Username)
				return nil
			},
		}

		svc := auth.NewService(repo)
		err := svc.SeedDefaultUsers(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []string{"accounts", "user1", "super"}, created)
	})

	t.Run("concurrent seed race is ignored", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				return nil, assert.AnError
			},
			createFn: func(ctx context.Context, user *auth.User) error {
				return assert.AnError
			},
		}

		// assert.AnError tidak mengandung "duplicate key", jadi harus gagal
		svc := auth.NewService(repo)
		err := svc.SeedDefaultUsers(context.Background())
		assert.Error(t, err)
	})
}
