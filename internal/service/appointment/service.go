package appointment

import (
	"context"
	"errors"
	"fmt"

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

	resourceName = "Appointment"
)

type Service struct {
	repo     repository.AppointmentRepository
	userRepo repository.UserRepository
}

func NewService(repo repository.AppointmentRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
	}
}

// List returns the caller's own appointments, latest start first.
func (s *Service) List(ctx context.Context, caller *session.Session) ([]*model.Appointment, error) {
	return s.repo.ListByUser(ctx, caller.UserID)
}

// Get returns an appointment owned by the caller. Rows of other users are
// reported as missing unless the caller is an admin.
func (s *Service) Get(ctx context.Context, caller *session.Session, id int64) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && apt.UserID != caller.UserID {
		return nil, apperrors.NotFound(resourceName, nil)
	}
	return apt, nil
}

func (s *Service) Create(ctx context.Context, caller *session.Session, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if req.UserID == 0 || req.Doctor == "" || req.Specialty == "" || (req.StartTime == "" && req.AppointmentDate == "") {
		return nil, apperrors.BadRequest(MsgMissingFields, nil)
	}

	apt, err := req.ToAppointment()
	if err != nil {
		return nil, invalidDate(err)
	}

	if err := s.checkTarget(ctx, caller, apt.UserID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return apt, nil
}

// Update applies a partial update. userId is mandatory and must name an
// existing user the caller may act for.
func (s *Service) Update(ctx context.Context, caller *session.Session, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if req.UserID == nil || *req.UserID == 0 {
		return nil, apperrors.BadRequest(MsgUserIDRequired, nil)
	}
	if err := s.checkTarget(ctx, caller, *req.UserID); err != nil {
		return nil, err
	}

	apt, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(apt); err != nil {
		return nil, invalidDate(err)
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *Service) Delete(ctx context.Context, caller *session.Session, id int64) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AdminList returns every appointment with its owner, latest start first.
func (s *Service) AdminList(ctx context.Context) ([]*model.AppointmentWithOwner, error) {
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

func (s *Service) AdminGet(ctx context.Context, id int64) (*model.AppointmentWithOwner, error) {
	item, err := s.repo.GetWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.Known() {
		return nil, orphaned(id)
	}
	return item, nil
}

// AdminUpdate applies a partial update to any appointment. A userId naming
// no user surfaces as not found.
func (s *Service) AdminUpdate(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.AppointmentWithOwner, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(apt); err != nil {
		return nil, invalidDate(err)
	}
	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}
	return s.AdminGet(ctx, id)
}

func (s *Service) AdminDelete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// checkTarget makes sure the caller may act for userID and that the user
// exists.
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
	return apperrors.Internal(fmt.Errorf("appointment %d has no owner", id))
}
