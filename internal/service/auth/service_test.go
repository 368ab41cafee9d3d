package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository/memory"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/metrics"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/security"
)

func newTestService(t *testing.T) (*Service, *metrics.Metrics) {
	t.Helper()
	m := metrics.New("test")
	repos := memory.NewRepositories()
	return NewService(repos.Users, security.NewBcryptHasher(bcrypt.MinCost), m), m
}

func signup(t *testing.T, svc *Service, email, password string) *model.User {
	t.Helper()
	u, err := svc.Signup(context.Background(), &model.SignupRequest{Email: email, Password: password, FullName: "Jane Roe"})
	require.NoError(t, err)
	return u
}

func TestSignup(t *testing.T) {
	svc, _ := newTestService(t)

	u := signup(t, svc, "jane@test.com", "secret1")
	assert.NotZero(t, u.ID)
	assert.Equal(t, model.RolePatient, u.Roles)
	assert.True(t, u.Active)
	assert.NotEqual(t, "secret1", u.Password)

	_, err := svc.Signup(context.Background(), &model.SignupRequest{Email: "jane@test.com", Password: "other"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, MsgUserExists, appErr.Message)
	assert.Nil(t, appErr.Err)
}

func TestSignupRequiresCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), &model.SignupRequest{Email: "x@test.com"})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestLogin(t *testing.T) {
	svc, m := newTestService(t)
	signup(t, svc, "jane@test.com", "secret1")

	u, err := svc.Login(context.Background(), "jane@test.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jane@test.com", u.Email)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(metrics.LoginSuccess)))
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	svc, m := newTestService(t)
	signup(t, svc, "jane@test.com", "secret1")

	_, unknown := svc.Login(context.Background(), "nobody@test.com", "secret1")
	_, wrong := svc.Login(context.Background(), "jane@test.com", "wrong")

	unknownErr, ok := apperrors.As(unknown)
	require.True(t, ok)
	wrongErr, ok := apperrors.As(wrong)
	require.True(t, ok)

	assert.Equal(t, MsgInvalidCredentials, unknownErr.Message)
	assert.Equal(t, unknownErr.Message, wrongErr.Message)
	assert.Equal(t, unknownErr.StatusCode(), wrongErr.StatusCode())
	assert.Equal(t, 401, wrongErr.StatusCode())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(metrics.LoginInvalidCredentials)))
}

func TestLoginUnknownEmailStillHashes(t *testing.T) {
	repo := &mockUserRepository{
		GetByEmailFunc: func(context.Context, string) (*model.User, error) {
			return nil, apperrors.NotFound("User", nil)
		},
	}
	var hashed, compared []string
	hasher := &mockHasher{
		HashFunc: func(password string) (string, error) {
			hashed = append(hashed, password)
			return "$2a$hash", nil
		},
		CompareFunc: func(hash, password string) error {
			compared = append(compared, hash+"|"+password)
			return errors.New("mismatch")
		},
	}
	svc := NewService(repo, hasher, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Login(context.Background(), "nobody@test.com", "secret1")
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, MsgInvalidCredentials, appErr.Message)
	}

	assert.Len(t, hashed, 1)
	assert.Equal(t, []string{"$2a$hash|secret1", "$2a$hash|secret1"}, compared)
}

func TestLoginDeactivated(t *testing.T) {
	repo := &mockUserRepository{
		GetByEmailFunc: func(_ context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, Active: false}, nil
		},
	}
	svc := NewService(repo, security.NewBcryptHasher(bcrypt.MinCost), nil)

	_, err := svc.Login(context.Background(), "jane@test.com", "secret1")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode())
	assert.Equal(t, MsgAccountDeactivated, appErr.Message)
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "", "secret1")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgCredentialsRequired, appErr.Message)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestLoginStorageFailure(t *testing.T) {
	repo := &mockUserRepository{
		GetByEmailFunc: func(context.Context, string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(repo, security.NewBcryptHasher(bcrypt.MinCost), nil)

	_, err := svc.Login(context.Background(), "jane@test.com", "secret1")
	require.Error(t, err)
	_, isAppErr := apperrors.As(err)
	assert.False(t, isAppErr)
}
