// Package seed loads the demo accounts and sample records.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/security"
)

const (
	AdminEmail      = "admin@quickhealth.com"
	AdminPassword   = "admin123"
	PatientEmail    = "patient@test.com"
	PatientPassword = "patient123"
)

type account struct {
	email    string
	password string
	fullName string
	phone    string
	roles    string
}

var accounts = []account{
	{AdminEmail, AdminPassword, "Admin User", "+1234567890", model.RoleAdmin},
	{PatientEmail, PatientPassword, "John Doe", "+1987654321", model.RolePatient},
}

type Service struct {
	repos  *repository.Repositories
	hasher security.PasswordHasher
}

func NewService(repos *repository.Repositories, hasher security.PasswordHasher) *Service {
	return &Service{repos: repos, hasher: hasher}
}

// Result reports what Run wrote.
type Result struct {
	Admin        *model.User
	Patient      *model.User
	Appointment  *model.Appointment
	Prescription *model.Prescription
}

// Run upserts the demo users by email, resetting their roles, and adds one
// sample appointment and prescription for the patient on every call.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	users := make([]*model.User, 0, len(accounts))
	for _, a := range accounts {
		u, err := s.upsertUser(ctx, a)
		if err != nil {
			return nil, err
		}
		log.Info().Str("email", u.Email).Str("roles", u.Roles).Msg("Seeded user")
		users = append(users, u)
	}
	patient := users[1]

	reason := "Routine checkup"
	end := time.Date(2025, 10, 20, 10, 30, 0, 0, time.UTC)
	apt := &model.Appointment{
		UserID:          patient.ID,
		Doctor:          "Dr. Sarah Smith",
		Specialty:       "Cardiology",
		AppointmentDate: time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC),
		EndTime:         &end,
		Reason:          &reason,
		Status:          model.AppointmentStatusPending,
	}
	if err := s.repos.Appointments.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to seed appointment: %w", err)
	}
	log.Info().Int64("id", apt.ID).Msg("Seeded appointment")

	instructions := "Take with food"
	expires := time.Date(2025, 11, 15, 9, 0, 0, 0, time.UTC)
	rx := &model.Prescription{
		UserID:       patient.ID,
		Medication:   "Aspirin",
		Dosage:       "100mg daily",
		Instructions: &instructions,
		IssuedAt:     time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
		ExpiresAt:    &expires,
		Status:       model.PrescriptionStatusActive,
	}
	if err := s.repos.Prescriptions.Create(ctx, rx); err != nil {
		return nil, fmt.Errorf("failed to seed prescription: %w", err)
	}
	log.Info().Int64("id", rx.ID).Msg("Seeded prescription")

	return &Result{
		Admin:        users[0],
		Patient:      patient,
		Appointment:  apt,
		Prescription: rx,
	}, nil
}

// upsertUser creates the account or, when it exists, only resets its roles.
func (s *Service) upsertUser(ctx context.Context, a account) (*model.User, error) {
	existing, err := s.repos.Users.GetByEmail(ctx, a.email)
	if err == nil {
		existing.Roles = a.roles
		if err := s.repos.Users.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update seed user %s: %w", a.email, err)
		}
		return existing, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up seed user %s: %w", a.email, err)
	}

	hash, err := s.hasher.Hash(a.password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	phone := a.phone
	u := &model.User{
		Email:    a.email,
		Password: hash,
		FullName: a.fullName,
		Phone:    &phone,
		Roles:    a.roles,
		Active:   true,
	}
	if err := s.repos.Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create seed user %s: %w", a.email, err)
	}
	return u, nil
}
