package auth

import (
	"context"
	"errors"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/security"
)

var (
	_ repository.UserRepository = (*mockUserRepository)(nil)
	_ security.PasswordHasher   = (*mockHasher)(nil)
)

type mockUserRepository struct {
	CreateFunc     func(ctx context.Context, user *model.User) error
	GetFunc        func(ctx context.Context, id int64) (*model.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	UpdateFunc     func(ctx context.Context, user *model.User) error
	DeleteFunc     func(ctx context.Context, id int64) error
	ListFunc       func(ctx context.Context) ([]*model.User, error)
}

var errNotImplemented = errors.New("not implemented in mock")

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return errNotImplemented
}

func (m *mockUserRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, errNotImplemented
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return errNotImplemented
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errNotImplemented
}

func (m *mockUserRepository) List(ctx context.Context) ([]*model.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, errNotImplemented
}

type mockHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hashedPassword, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "", errNotImplemented
}

func (m *mockHasher) Compare(hashedPassword, password string) error {
	if m.CompareFunc != nil {
		return m.CompareFunc(hashedPassword, password)
	}
	return errNotImplemented
}
