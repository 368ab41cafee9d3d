// Package memory is an in-process storage driver. It honours the same
// constraints as the postgres schema: unique email, owner foreign keys and
// cascading user deletes.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
)

type store struct {
	mu sync.RWMutex

	lastID        int64
	users         map[int64]model.User
	appointments  map[int64]model.Appointment
	prescriptions map[int64]model.Prescription
	contacts      map[int64]model.ContactMessage

	now func() time.Time
}

// NewRepositories returns every repository backed by one shared store.
func NewRepositories() *repository.Repositories {
	s := &store{
		users:         make(map[int64]model.User),
		appointments:  make(map[int64]model.Appointment),
		prescriptions: make(map[int64]model.Prescription),
		contacts:      make(map[int64]model.ContactMessage),
		now:           func() time.Time { return time.Now().UTC() },
	}

	return &repository.Repositories{
		Users:         &userRepository{s},
		Appointments:  &appointmentRepository{s},
		Prescriptions: &prescriptionRepository{s},
		Contacts:      &contactMessageRepository{s},
	}
}

// nextID must be called with mu held for writing.
func (s *store) nextID() int64 {
	s.lastID++
	return s.lastID
}

func (s *store) owner(userID int64) model.Owner {
	u, ok := s.users[userID]
	if !ok {
		return model.Owner{}
	}
	name, email := u.FullName, u.Email
	return model.Owner{PatientName: &name, PatientEmail: &email}
}

// newestFirst sorts by the given instant, then id, both descending.
func newestFirst[T any](items []T, at func(T) time.Time, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool {
		ti, tj := at(items[i]), at(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return id(items[i]) > id(items[j])
	})
}
