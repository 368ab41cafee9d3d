package memory

import (
	"context"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

type appointmentRepository struct {
	*store
}

func (r *appointmentRepository) Create(_ context.Context, appt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[appt.UserID]; !ok {
		return apperrors.NotFound("User", nil)
	}

	now := r.now()
	appt.ID = r.nextID()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	r.appointments[appt.ID] = *appt
	return nil
}

func (r *appointmentRepository) Get(_ context.Context, id int64) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("Appointment", nil)
	}
	return &a, nil
}

func (r *appointmentRepository) GetWithOwner(_ context.Context, id int64) (*model.AppointmentWithOwner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("Appointment", nil)
	}
	return &model.AppointmentWithOwner{Appointment: a, Owner: r.owner(a.UserID)}, nil
}

func (r *appointmentRepository) Update(_ context.Context, appt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.appointments[appt.ID]
	if !ok {
		return apperrors.NotFound("Appointment", nil)
	}
	if _, ok := r.users[appt.UserID]; !ok {
		return apperrors.NotFound("User", nil)
	}

	appt.CreatedAt = existing.CreatedAt
	appt.UpdatedAt = r.now()
	r.appointments[appt.ID] = *appt
	return nil
}

func (r *appointmentRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return apperrors.NotFound("Appointment", nil)
	}
	delete(r.appointments, id)
	return nil
}

func (r *appointmentRepository) ListByUser(_ context.Context, userID int64) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*model.Appointment, 0)
	for _, a := range r.appointments {
		if a.UserID == userID {
			a := a
			items = append(items, &a)
		}
	}
	newestFirst(items,
		func(a *model.Appointment) time.Time { return a.AppointmentDate },
		func(a *model.Appointment) int64 { return a.ID })
	return items, nil
}

func (r *appointmentRepository) ListWithOwner(_ context.Context) ([]*model.AppointmentWithOwner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*model.AppointmentWithOwner, 0, len(r.appointments))
	for _, a := range r.appointments {
		items = append(items, &model.AppointmentWithOwner{Appointment: a, Owner: r.owner(a.UserID)})
	}
	newestFirst(items,
		func(a *model.AppointmentWithOwner) time.Time { return a.AppointmentDate },
		func(a *model.AppointmentWithOwner) int64 { return a.ID })
	return items, nil
}
