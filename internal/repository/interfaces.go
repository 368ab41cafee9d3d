package repository

import (
	"context"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
)

// All repository interfaces in one file. Implementations report a missing
// row as a NotFound app error, a unique violation as Conflict and a missing
// foreign key target as NotFound.
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id int64) error
		// List returns users, newest first.
		List(ctx context.Context) ([]*model.User, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		GetWithOwner(ctx context.Context, id int64) (*model.AppointmentWithOwner, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id int64) error
		// ListByUser and ListWithOwner order by scheduled start, latest first.
		ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error)
		ListWithOwner(ctx context.Context) ([]*model.AppointmentWithOwner, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id int64) (*model.Prescription, error)
		GetWithOwner(ctx context.Context, id int64) (*model.PrescriptionWithOwner, error)
		Update(ctx context.Context, prescription *model.Prescription) error
		Delete(ctx context.Context, id int64) error
		// ListByUser and ListWithOwner order by issuedAt, latest first.
		ListByUser(ctx context.Context, userID int64) ([]*model.Prescription, error)
		ListWithOwner(ctx context.Context) ([]*model.PrescriptionWithOwner, error)
	}

	ContactMessageRepository interface {
		Create(ctx context.Context, msg *model.ContactMessage) error
		Get(ctx context.Context, id int64) (*model.ContactMessage, error)
		Delete(ctx context.Context, id int64) error
		// List returns messages, newest first.
		List(ctx context.Context) ([]*model.ContactMessage, error)
	}
)

// Repositories bundles one implementation of every repository.
type Repositories struct {
	Users         UserRepository
	Appointments  AppointmentRepository
	Prescriptions PrescriptionRepository
	Contacts      ContactMessageRepository
}
