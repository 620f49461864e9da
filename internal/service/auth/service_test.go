package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
	"github.com/hms/hms-api/pkg/auth"
	apperrors "github.com/hms/hms-api/pkg/errors"
)

type fakeUserRepo struct {
	user *model.User
}

func (r *fakeUserRepo) Create(_ context.Context, _ *model.User, _ string) error { return nil }

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error)      { return nil, nil }
func (r *fakeUserRepo) ListRoles(_ context.Context) ([]string, error)      { return nil, nil }
func (r *fakeUserRepo) ListDoctorProfiles(_ context.Context) ([]*model.DoctorProfile, error) {
	return nil, nil
}
func (r *fakeUserRepo) CreateDoctorProfile(_ context.Context, _ *model.DoctorProfile) error {
	return nil
}

func newTestService(t *testing.T) (Service, *model.User) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		ID:           uuid.New(),
		Username:     "drsmith",
		Email:        "drsmith@hms.local",
		PasswordHash: string(hash),
		Roles:        []string{model.RoleDoctor},
	}

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:   "test-secret",
		Issuer:   "hms-api",
		Audience: "hms-client",
		Expiry:   time.Hour,
	})

	return NewService(&fakeUserRepo{user: user}, jwtSvc), user
}

func TestLoginIssuesTokenWithRoleClaims(t *testing.T) {
	svc, user := newTestService(t)

	tokens, err := svc.Login(context.Background(), "drsmith", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.True(t, tokens.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "drsmith", claims.Username)
	assert.Equal(t, []string{model.RoleDoctor}, claims.Roles)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "drsmith", "wrong")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody", "Passw0rd!")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ValidateToken("not-a-token")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}
