package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/metrics"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/security"
)

const (
	MsgCredentialsRequired = "Email and password are required"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgAccountDeactivated  = "Account is deactivated"
	MsgUserExists          = "User already exists"
)

// timingPassword is hashed once and compared against on unknown emails so
// that path costs the same as a wrong password.
const timingPassword = "quickhealth-timing-placeholder"

type Service struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	metrics  *metrics.Metrics

	dummyOnce sync.Once
	dummyHash string
}

func NewService(userRepo repository.UserRepository, hasher security.PasswordHasher, m *metrics.Metrics) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		metrics:  m,
	}
}

// Login verifies credentials. Unknown emails and wrong passwords fail with
// the same error; a deactivated account fails with its own message.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.BadRequest(MsgCredentialsRequired, nil)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		_ = s.hasher.Compare(s.timingHash(), password)
		s.metrics.ObserveLogin(metrics.LoginInvalidCredentials)
		return nil, apperrors.Unauthorized(MsgInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.Active {
		s.metrics.ObserveLogin(metrics.LoginDeactivated)
		return nil, apperrors.Unauthorized(MsgAccountDeactivated)
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		s.metrics.ObserveLogin(metrics.LoginInvalidCredentials)
		return nil, apperrors.Unauthorized(MsgInvalidCredentials)
	}

	s.metrics.ObserveLogin(metrics.LoginSuccess)
	return user, nil
}

// Signup registers an active patient account.
func (s *Service) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.BadRequest(MsgCredentialsRequired, nil)
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
		Roles:    model.RolePatient,
		Active:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *Service) timingHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(timingPassword)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
