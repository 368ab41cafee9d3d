package memory

import (
	"context"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

type userRepository struct {
	*store
}

func (r *userRepository) emailTaken(email string, exceptID int64) bool {
	for id, u := range r.users {
		if u.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, 0) {
		return apperrors.Conflict("User already exists", nil)
	}

	now := r.now()
	user.ID = r.nextID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *userRepository) Get(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("User", nil)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("User", nil)
}

func (r *userRepository) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return apperrors.NotFound("User", nil)
	}
	if r.emailTaken(user.Email, user.ID) {
		return apperrors.Conflict("User already exists", nil)
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = r.now()
	r.users[user.ID] = *user
	return nil
}

func (r *userRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperrors.NotFound("User", nil)
	}
	delete(r.users, id)

	for aid, a := range r.appointments {
		if a.UserID == id {
			delete(r.appointments, aid)
		}
	}
	for pid, p := range r.prescriptions {
		if p.UserID == id {
			delete(r.prescriptions, pid)
		}
	}
	return nil
}

func (r *userRepository) List(_ context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		users = append(users, &u)
	}
	newestFirst(users,
		func(u *model.User) time.Time { return u.CreatedAt },
		func(u *model.User) int64 { return u.ID })
	return users, nil
}
