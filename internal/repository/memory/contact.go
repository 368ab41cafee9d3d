package memory

import (
	"context"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

type contactMessageRepository struct {
	*store
}

func (r *contactMessageRepository) Create(_ context.Context, msg *model.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = r.nextID()
	msg.CreatedAt = r.now()
	r.contacts[msg.ID] = *msg
	return nil
}

func (r *contactMessageRepository) Get(_ context.Context, id int64) (*model.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.contacts[id]
	if !ok {
		return nil, apperrors.NotFound("Message", nil)
	}
	return &m, nil
}

func (r *contactMessageRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[id]; !ok {
		return apperrors.NotFound("Message", nil)
	}
	delete(r.contacts, id)
	return nil
}

func (r *contactMessageRepository) List(_ context.Context) ([]*model.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := make([]*model.ContactMessage, 0, len(r.contacts))
	for _, m := range r.contacts {
		m := m
		msgs = append(msgs, &m)
	}
	newestFirst(msgs,
		func(m *model.ContactMessage) time.Time { return m.CreatedAt },
		func(m *model.ContactMessage) int64 { return m.ID })
	return msgs, nil
}
