package prescription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

const (
	MsgMissingFields  = "Missing required fields"
	MsgUserIDRequired = "userId is required"
	MsgUserNotFound   = "User not found"
	MsgInvalidDate    = "Invalid date format"
	MsgForbidden      = "Forbidden - Insufficient permissions"
)

type Service struct {
	repo     repository.PrescriptionRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewService(repo repository.PrescriptionRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context, caller *session.Session) ([]*model.Prescription, error) {
	return s.repo.ListByUser(ctx, caller.UserID)
}

// Get hides prescriptions of other users from non-admins.
func (s *Service) Get(ctx context.Context, caller *session.Session, id int64) (*model.Prescription, error) {
	rx, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && rx.UserID != caller.UserID {
		return nil, apperrors.NotFound("Prescription", nil)
	}
	return rx, nil
}

// Create stores a prescription; issuedAt defaults to now and status to
// Active.
func (s *Service) Create(ctx context.Context, caller *session.Session, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if req.UserID == 0 || req.Medication == "" || req.Dosage == "" {
		return nil, apperrors.BadRequest(MsgMissingFields, nil)
	}

	rx, err := req.ToPrescription(s.now())
	if err != nil {
		return nil, invalidDate(err)
	}

	if err := s.checkTarget(ctx, caller, rx.UserID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rx); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}
	return rx, nil
}

func (s *Service) Update(ctx context.Context, caller *session.Session, id int64, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	if req.UserID == nil || *req.UserID == 0 {
		return nil, apperrors.BadRequest(MsgUserIDRequired, nil)
	}
	if err := s.checkTarget(ctx, caller, *req.UserID); err != nil {
		return nil, err
	}

	rx, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(rx); err != nil {
		return nil, invalidDate(err)
	}

	if err := s.repo.Update(ctx, rx); err != nil {
		return nil, err
	}
	return rx, nil
}

func (s *Service) Delete(ctx context.Context, caller *session.Session, id int64) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) AdminList(ctx context.Context) ([]*model.PrescriptionWithOwner, error) {
	items, err := s.repo.ListWithOwner(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if !item.Known() {
			return nil, orphaned(item.ID)
		}
	}
	return items, nil
}

func (s *Service) AdminGet(ctx context.Context, id int64) (*model.PrescriptionWithOwner, error) {
	item, err := s.repo.GetWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.Known() {
		return nil, orphaned(id)
	}
	return item, nil
}

func (s *Service) AdminUpdate(ctx context.Context, id int64, req *model.UpdatePrescriptionRequest) (*model.PrescriptionWithOwner, error) {
	rx, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(rx); err != nil {
		return nil, invalidDate(err)
	}
	if err := s.repo.Update(ctx, rx); err != nil {
		return nil, err
	}
	return s.AdminGet(ctx, id)
}

func (s *Service) AdminDelete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkTarget(ctx context.Context, caller *session.Session, userID int64) error {
	if !caller.IsAdmin() && userID != caller.UserID {
		return apperrors.Forbidden(MsgForbidden)
	}
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return apperrors.BadRequest(MsgUserNotFound, err)
		}
		return err
	}
	return nil
}

func invalidDate(err error) error {
	if errors.Is(err, model.ErrInvalidInstant) {
		return apperrors.BadRequest(MsgInvalidDate, err)
	}
	return err
}

func orphaned(id int64) error {
	return apperrors.Internal(fmt.Errorf("prescription %d has no owner", id))
}
