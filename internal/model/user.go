package model

import (
	"time"
)

// User represents a portal account
type User struct {
	Base
	Email       string     `db:"email"`
	Password    string     `db:"password" json:"-"`
	FullName    string     `db:"full_name"`
	Phone       *string    `db:"phone"`
	Roles       string     `db:"roles"`
	Active      bool       `db:"active"`
	Gender      *string    `db:"gender"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Address     *string    `db:"address"`
	Avatar      *string    `db:"avatar"`
}

// RoleSet returns the user's roles in array form.
func (u *User) RoleSet() []string {
	return RolesToArray(u.Roles)
}

// IsAdmin reports whether the stored roles include ADMIN.
func (u *User) IsAdmin() bool {
	return HasRole(u.RoleSet(), RoleAdmin)
}

// UserResponse is the outward shape of a user. The password hash never
// leaves the service.
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Phone       *string    `json:"phone"`
	Roles       []string   `json:"roles"`
	Active      bool       `json:"active"`
	Gender      *string    `json:"gender"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     *string    `json:"address"`
	Avatar      *string    `json:"avatar"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Roles:       u.RoleSet(),
		Active:      u.Active,
		Gender:      u.Gender,
		DateOfBirth: utcPtr(u.DateOfBirth),
		Address:     u.Address,
		Avatar:      u.Avatar,
		CreatedAt:   u.CreatedAt.UTC(),
		UpdatedAt:   u.UpdatedAt.UTC(),
	}
}

func ToUserResponses(users []*User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out
}

type SignupRequest struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	FullName string  `json:"fullName"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the self-service update. Email selects the
// account and is never changed through it.
type UpdateProfileRequest struct {
	Email    string  `json:"email" binding:"required"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
}

// Apply copies the self-editable fields onto u.
func (r *UpdateProfileRequest) Apply(u *User) {
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
}

type CreateUserRequest struct {
	Email    string   `json:"email" binding:"required"`
	Password string   `json:"password" binding:"required"`
	FullName string   `json:"fullName"`
	Phone    *string  `json:"phone"`
	Roles    RoleList `json:"roles"`
}

// StoredRoles returns the persisted role string, PATIENT when none given.
func (r *CreateUserRequest) StoredRoles() string {
	if len(r.Roles) == 0 {
		return RolePatient
	}
	return RolesToStored(r.Roles)
}

type AdminUpdateUserRequest struct {
	Email       *string   `json:"email"`
	FullName    *string   `json:"fullName"`
	Phone       *string   `json:"phone"`
	Roles       *RoleList `json:"roles"`
	Gender      *string   `json:"gender"`
	DateOfBirth *string   `json:"dateOfBirth"`
	Address     *string   `json:"address"`
	Avatar      *string   `json:"avatar"`
}

// Apply copies every supplied field onto u. Roles go through the ADMIN
// collapse rule.
func (r *AdminUpdateUserRequest) Apply(u *User) error {
	if r.DateOfBirth != nil {
		dob, err := parseOptionalInstant(*r.DateOfBirth)
		if err != nil {
			return err
		}
		if dob != nil {
			u.DateOfBirth = dob
		}
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
	if r.Roles != nil {
		u.Roles = RolesToStored(*r.Roles)
	}
	if r.Gender != nil {
		u.Gender = r.Gender
	}
	if r.Address != nil {
		u.Address = r.Address
	}
	if r.Avatar != nil {
		u.Avatar = r.Avatar
	}
	return nil
}
