package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/security"
)

const (
	MsgEmailRequired     = "Email is required"
	MsgCredentialsNeeded = "Email and password are required"
	MsgForbidden         = "Forbidden - Insufficient permissions"
	MsgInvalidDate       = "Invalid date format"
)

type Service struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// GetMe returns the account addressed by email. Non-admins may only address
// their own account.
func (s *Service) GetMe(ctx context.Context, caller *session.Session, email string) (*model.User, error) {
	if err := authorizeSelf(caller, email); err != nil {
		return nil, err
	}
	return s.userRepo.GetByEmail(ctx, email)
}

// UpdateMe changes the name and phone of the account addressed by req.Email.
func (s *Service) UpdateMe(ctx context.Context, caller *session.Session, req *model.UpdateProfileRequest) (*model.User, error) {
	if err := authorizeSelf(caller, req.Email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	req.Apply(user)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func authorizeSelf(caller *session.Session, email string) error {
	if email == "" {
		return apperrors.BadRequest(MsgEmailRequired, nil)
	}
	if !caller.IsAdmin() && caller.Email != email {
		return apperrors.Forbidden(MsgForbidden)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.Get(ctx, id)
}

// Create registers an account on behalf of an admin. Roles default to
// PATIENT and an ADMIN grant collapses to ADMIN alone.
func (s *Service) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.BadRequest(MsgCredentialsNeeded, nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:    req.Email,
		Password: hash,
		FullName: req.FullName,
		Phone:    req.Phone,
		Roles:    req.StoredRoles(),
		Active:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.AdminUpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Apply(user); err != nil {
		if errors.Is(err, model.ErrInvalidInstant) {
			return nil, apperrors.BadRequest(MsgInvalidDate, err)
		}
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetRoles replaces the stored roles. Sessions already issued keep their
// login-time snapshot.
func (s *Service) SetRoles(ctx context.Context, id int64, roles []string) (*model.User, error) {
	return s.modify(ctx, id, func(u *model.User) {
		u.Roles = model.RolesToStored(roles)
	})
}

func (s *Service) Activate(ctx context.Context, id int64) (*model.User, error) {
	return s.modify(ctx, id, func(u *model.User) { u.Active = true })
}

func (s *Service) Deactivate(ctx context.Context, id int64) (*model.User, error) {
	return s.modify(ctx, id, func(u *model.User) { u.Active = false })
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *Service) modify(ctx context.Context, id int64, fn func(*model.User)) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(user)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
