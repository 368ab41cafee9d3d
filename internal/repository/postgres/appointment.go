package postgres

import (
	"context"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
)

const appointmentColumns = `a.id, a.user_id, a.doctor, a.specialty, a.appointment_date,
	a.end_time, a.reason, a.status, a.created_at, a.updated_at`

const appointmentWithOwnerSelect = `
	SELECT ` + appointmentColumns + `,
		u.full_name AS patient_name,
		u.email AS patient_email
	FROM appointments a
	LEFT JOIN users u ON u.id = a.user_id
`

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			user_id, doctor, specialty, appointment_date, end_time,
			reason, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	err := r.db.QueryRowxContext(ctx, query,
		appt.UserID,
		appt.Doctor,
		appt.Specialty,
		appt.AppointmentDate,
		appt.EndTime,
		appt.Reason,
		appt.Status,
		appt.CreatedAt,
		appt.UpdatedAt,
	).Scan(&appt.ID)
	if err != nil {
		return translateError(err, "Appointment", "create appointment")
	}

	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments a WHERE a.id = $1`

	var appt model.Appointment
	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		return nil, translateError(err, "Appointment", "get appointment")
	}

	return &appt, nil
}

func (r *appointmentRepository) GetWithOwner(ctx context.Context, id int64) (*model.AppointmentWithOwner, error) {
	query := appointmentWithOwnerSelect + ` WHERE a.id = $1`

	var appt model.AppointmentWithOwner
	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		return nil, translateError(err, "Appointment", "get appointment")
	}

	return &appt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	query := `
		UPDATE appointments SET
			user_id = $1,
			doctor = $2,
			specialty = $3,
			appointment_date = $4,
			end_time = $5,
			reason = $6,
			status = $7,
			updated_at = $8
		WHERE id = $9
	`

	appt.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		appt.UserID,
		appt.Doctor,
		appt.Specialty,
		appt.AppointmentDate,
		appt.EndTime,
		appt.Reason,
		appt.Status,
		appt.UpdatedAt,
		appt.ID,
	)
	if err != nil {
		return translateError(err, "Appointment", "update appointment")
	}

	return expectOne(result, "Appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "Appointment", "delete appointment")
	}

	return expectOne(result, "Appointment")
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		WHERE a.user_id = $1
		ORDER BY a.appointment_date DESC, a.id DESC
	`

	var appts []*model.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, userID); err != nil {
		return nil, translateError(err, "Appointment", "list appointments")
	}

	return appts, nil
}

func (r *appointmentRepository) ListWithOwner(ctx context.Context) ([]*model.AppointmentWithOwner, error) {
	query := appointmentWithOwnerSelect + ` ORDER BY a.appointment_date DESC, a.id DESC`

	var appts []*model.AppointmentWithOwner
	if err := r.db.SelectContext(ctx, &appts, query); err != nil {
		return nil, translateError(err, "Appointment", "list appointments")
	}

	return appts, nil
}
