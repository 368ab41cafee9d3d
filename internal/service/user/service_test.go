package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository/memory"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/security"
)

func strPtr(s string) *string { return &s }

func setup(t *testing.T) (*Service, *model.User, *session.Session) {
	t.Helper()
	svc := NewService(memory.NewRepositories().Users, security.NewBcryptHasher(bcrypt.MinCost))

	u, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Email: "jane@test.com", Password: "secret1", FullName: "Jane Roe",
	})
	require.NoError(t, err)

	return svc, u, &session.Session{UserID: u.ID, Email: u.Email, Roles: u.RoleSet()}
}

func TestCreateDefaultsToPatient(t *testing.T) {
	_, u, _ := setup(t)
	assert.Equal(t, model.RolePatient, u.Roles)
	assert.True(t, u.Active)
}

func TestCreateCollapsesAdmin(t *testing.T) {
	svc, _, _ := setup(t)

	u, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Email: "boss@test.com", Password: "pw", Roles: model.RoleList{"PATIENT", "ADMIN"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Roles)

	_, err = svc.Create(context.Background(), &model.CreateUserRequest{Email: "boss@test.com", Password: "pw"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "User already exists", appErr.Message)
	assert.Nil(t, appErr.Err)
}

func TestGetMe(t *testing.T) {
	svc, u, caller := setup(t)
	ctx := context.Background()

	got, err := svc.GetMe(ctx, caller, "jane@test.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.GetMe(ctx, caller, "")
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))

	_, err = svc.GetMe(ctx, caller, "someone@test.com")
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	admin := &session.Session{UserID: 99, Email: "admin@test.com", Roles: []string{model.RoleAdmin}}
	_, err = svc.GetMe(ctx, admin, "missing@test.com")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestUpdateMeOnlyTouchesNameAndPhone(t *testing.T) {
	svc, u, caller := setup(t)

	updated, err := svc.UpdateMe(context.Background(), caller, &model.UpdateProfileRequest{
		Email:    u.Email,
		FullName: strPtr("Jane Q. Roe"),
		Phone:    strPtr("+27110000000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Roe", updated.FullName)
	assert.Equal(t, "+27110000000", *updated.Phone)
	assert.Equal(t, model.RolePatient, updated.Roles)
	assert.Equal(t, u.Email, updated.Email)
}

func TestSetRoles(t *testing.T) {
	svc, u, _ := setup(t)

	updated, err := svc.SetRoles(context.Background(), u.ID, []string{"ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", updated.Roles)
	assert.Equal(t, []string{"ADMIN"}, updated.RoleSet())

	_, err = svc.SetRoles(context.Background(), 12345, []string{"ADMIN"})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestActivateDeactivate(t *testing.T) {
	svc, u, _ := setup(t)
	ctx := context.Background()

	off, err := svc.Deactivate(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, off.Active)

	on, err := svc.Activate(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, on.Active)
}

func TestAdminUpdate(t *testing.T) {
	svc, u, _ := setup(t)
	ctx := context.Background()
	roles := model.RoleList{"PATIENT", "DOCTOR"}

	updated, err := svc.Update(ctx, u.ID, &model.AdminUpdateUserRequest{
		FullName:    strPtr("Jane Admin-Edited"),
		Roles:       &roles,
		DateOfBirth: strPtr("1990-05-17"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Admin-Edited", updated.FullName)
	assert.Equal(t, "PATIENT,DOCTOR", updated.Roles)
	require.NotNil(t, updated.DateOfBirth)
	assert.Equal(t, 1990, updated.DateOfBirth.Year())

	_, err = svc.Update(ctx, u.ID, &model.AdminUpdateUserRequest{DateOfBirth: strPtr("yesterday")})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgInvalidDate, appErr.Message)
}

func TestDelete(t *testing.T) {
	svc, u, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.True(t, apperrors.Is(svc.Delete(ctx, u.ID), apperrors.ErrNotFound))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
