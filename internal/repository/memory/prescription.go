package memory

import (
	"context"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

type prescriptionRepository struct {
	*store
}

func (r *prescriptionRepository) Create(_ context.Context, p *model.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[p.UserID]; !ok {
		return apperrors.NotFound("User", nil)
	}

	now := r.now()
	p.ID = r.nextID()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.prescriptions[p.ID] = *p
	return nil
}

func (r *prescriptionRepository) Get(_ context.Context, id int64) (*model.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prescriptions[id]
	if !ok {
		return nil, apperrors.NotFound("Prescription", nil)
	}
	return &p, nil
}

func (r *prescriptionRepository) GetWithOwner(_ context.Context, id int64) (*model.PrescriptionWithOwner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prescriptions[id]
	if !ok {
		return nil, apperrors.NotFound("Prescription", nil)
	}
	return &model.PrescriptionWithOwner{Prescription: p, Owner: r.owner(p.UserID)}, nil
}

func (r *prescriptionRepository) Update(_ context.Context, p *model.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.prescriptions[p.ID]
	if !ok {
		return apperrors.NotFound("Prescription", nil)
	}
	if _, ok := r.users[p.UserID]; !ok {
		return apperrors.NotFound("User", nil)
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = r.now()
	r.prescriptions[p.ID] = *p
	return nil
}

func (r *prescriptionRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.prescriptions[id]; !ok {
		return apperrors.NotFound("Prescription", nil)
	}
	delete(r.prescriptions, id)
	return nil
}

func (r *prescriptionRepository) ListByUser(_ context.Context, userID int64) ([]*model.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*model.Prescription, 0)
	for _, p := range r.prescriptions {
		if p.UserID == userID {
			p := p
			items = append(items, &p)
		}
	}
	newestFirst(items,
		func(p *model.Prescription) time.Time { return p.IssuedAt },
		func(p *model.Prescription) int64 { return p.ID })
	return items, nil
}

func (r *prescriptionRepository) ListWithOwner(_ context.Context) ([]*model.PrescriptionWithOwner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*model.PrescriptionWithOwner, 0, len(r.prescriptions))
	for _, p := range r.prescriptions {
		items = append(items, &model.PrescriptionWithOwner{Prescription: p, Owner: r.owner(p.UserID)})
	}
	newestFirst(items,
		func(p *model.PrescriptionWithOwner) time.Time { return p.IssuedAt },
		func(p *model.PrescriptionWithOwner) int64 { return p.ID })
	return items, nil
}
