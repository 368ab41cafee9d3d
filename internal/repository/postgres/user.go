package postgres

import (
	"context"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
)

const userColumns = `id, email, password, full_name, phone, roles, active,
	gender, date_of_birth, address, avatar, created_at, updated_at`

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			email, password, full_name, phone, roles, active,
			gender, date_of_birth, address, avatar, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := r.db.QueryRowxContext(ctx, query,
		user.Email,
		user.Password,
		user.FullName,
		user.Phone,
		user.Roles,
		user.Active,
		user.Gender,
		user.DateOfBirth,
		user.Address,
		user.Avatar,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return translateError(err, "User", "create user")
	}

	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, translateError(err, "User", "get user")
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, translateError(err, "User", "get user by email")
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			email = $1,
			password = $2,
			full_name = $3,
			phone = $4,
			roles = $5,
			active = $6,
			gender = $7,
			date_of_birth = $8,
			address = $9,
			avatar = $10,
			updated_at = $11
		WHERE id = $12
	`

	user.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.Password,
		user.FullName,
		user.Phone,
		user.Roles,
		user.Active,
		user.Gender,
		user.DateOfBirth,
		user.Address,
		user.Avatar,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return translateError(err, "User", "update user")
	}

	return expectOne(result, "User")
}

// Delete removes the user; appointments and prescriptions cascade.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "User", "delete user")
	}

	return expectOne(result, "User")
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, translateError(err, "User", "list users")
	}

	return users, nil
}
