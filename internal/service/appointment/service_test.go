package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository/memory"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64  { return &v }

type fixture struct {
	svc   *Service
	alice *session.Session
	bob   *session.Session
	admin *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories()

	mk := func(email, name, roles string) *session.Session {
		u := &model.User{Email: email, FullName: name, Roles: roles, Active: true}
		require.NoError(t, repos.Users.Create(ctx, u))
		return &session.Session{UserID: u.ID, Email: email, Roles: u.RoleSet()}
	}

	return &fixture{
		svc:   NewService(repos.Appointments, repos.Users),
		alice: mk("alice@test.com", "Alice", model.RolePatient),
		bob:   mk("bob@test.com", "Bob", model.RolePatient),
		admin: mk("admin@test.com", "Admin", model.RoleAdmin),
	}
}

func (f *fixture) book(t *testing.T, caller *session.Session, start string) *model.Appointment {
	t.Helper()
	apt, err := f.svc.Create(context.Background(), caller, &model.CreateAppointmentRequest{
		UserID:    caller.UserID,
		Doctor:    "Dr. Sarah Smith",
		Specialty: "Cardiology",
		StartTime: start,
	})
	require.NoError(t, err)
	return apt
}

func TestCreateWithAppointmentDateOnly(t *testing.T) {
	f := newFixture(t)

	apt, err := f.svc.Create(context.Background(), f.alice, &model.CreateAppointmentRequest{
		UserID:          f.alice.UserID,
		Doctor:          "Dr. Sarah Smith",
		Specialty:       "Cardiology",
		AppointmentDate: "2025-12-01T10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, 10, apt.AppointmentDate.Hour())
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.CreateAppointmentRequest
		code apperrors.ErrorCode
		msg  string
	}{
		{
			name: "no start",
			req:  model.CreateAppointmentRequest{UserID: f.alice.UserID, Doctor: "Dr. X", Specialty: "GP"},
			code: apperrors.ErrBadRequest, msg: MsgMissingFields,
		},
		{
			name: "no doctor",
			req:  model.CreateAppointmentRequest{UserID: f.alice.UserID, Specialty: "GP", StartTime: "2025-12-01"},
			code: apperrors.ErrBadRequest, msg: MsgMissingFields,
		},
		{
			name: "bad date",
			req:  model.CreateAppointmentRequest{UserID: f.alice.UserID, Doctor: "Dr. X", Specialty: "GP", StartTime: "soon"},
			code: apperrors.ErrBadRequest, msg: MsgInvalidDate,
		},
		{
			name: "someone else",
			req:  model.CreateAppointmentRequest{UserID: f.bob.UserID, Doctor: "Dr. X", Specialty: "GP", StartTime: "2025-12-01"},
			code: apperrors.ErrForbidden, msg: MsgForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, f.alice, &tt.req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}
}

func TestAdminCreateForUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.admin, &model.CreateAppointmentRequest{
		UserID: 9999, Doctor: "Dr. X", Specialty: "GP", StartTime: "2025-12-01",
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, MsgUserNotFound, appErr.Message)
}

func TestPatientIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := f.book(t, f.alice, "2025-12-01T10:00:00Z")
	f.book(t, f.alice, "2025-12-03T10:00:00Z")
	theirs := f.book(t, f.bob, "2025-12-02T10:00:00Z")

	list, err := f.svc.List(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, a := range list {
		assert.Equal(t, f.alice.UserID, a.UserID)
	}
	assert.True(t, list[0].AppointmentDate.After(list[1].AppointmentDate))

	_, err = f.svc.Get(ctx, f.alice, theirs.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	err = f.svc.Delete(ctx, f.alice, theirs.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	got, err := f.svc.Get(ctx, f.admin, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, f.bob.UserID, got.UserID)

	got, err = f.svc.Get(ctx, f.alice, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apt := f.book(t, f.alice, "2025-12-01T10:00:00Z")

	_, err := f.svc.Update(ctx, f.alice, apt.ID, &model.UpdateAppointmentRequest{Status: strPtr("CONFIRMED")})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgUserIDRequired, appErr.Message)

	updated, err := f.svc.Update(ctx, f.alice, apt.ID, &model.UpdateAppointmentRequest{
		UserID:    int64Ptr(f.alice.UserID),
		Status:    strPtr("CONFIRMED"),
		StartTime: strPtr("2025-12-05T09:30:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", updated.Status)
	assert.Equal(t, 5, updated.AppointmentDate.Day())
	assert.Equal(t, "Dr. Sarah Smith", updated.Doctor)

	_, err = f.svc.Update(ctx, f.alice, apt.ID, &model.UpdateAppointmentRequest{UserID: int64Ptr(f.bob.UserID)})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestDeleteMissing(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Delete(context.Background(), f.alice, 424242)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode())

	assert.True(t, apperrors.Is(f.svc.AdminDelete(context.Background(), 424242), apperrors.ErrNotFound))
}

func TestAdminListEnriched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, f.alice, "2025-12-01T10:00:00Z")
	f.book(t, f.bob, "2025-12-02T10:00:00Z")

	items, err := f.svc.AdminList(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	owners := map[int64]string{}
	for _, item := range items {
		resp := item.ToAdminResponse()
		owners[resp.UserID] = resp.PatientEmail
		assert.Equal(t, resp.StartTime, resp.AppointmentDate)
	}
	assert.Equal(t, "alice@test.com", owners[f.alice.UserID])
	assert.Equal(t, "bob@test.com", owners[f.bob.UserID])
	assert.Equal(t, "Bob", *items[0].PatientName)
}

func TestAdminUpdateUnknownUser(t *testing.T) {
	f := newFixture(t)
	apt := f.book(t, f.alice, "2025-12-01T10:00:00Z")

	_, err := f.svc.AdminUpdate(context.Background(), apt.ID, &model.UpdateAppointmentRequest{UserID: int64Ptr(9999)})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	updated, err := f.svc.AdminUpdate(context.Background(), apt.ID, &model.UpdateAppointmentRequest{UserID: int64Ptr(f.bob.UserID)})
	require.NoError(t, err)
	assert.Equal(t, "bob@test.com", *updated.PatientEmail)
}
