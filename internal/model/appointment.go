package model

import (
	"time"
)

const AppointmentStatusPending = "PENDING"

// Appointment is a booking owned by one user. AppointmentDate is the
// scheduled start; EndTime is not validated against it.
type Appointment struct {
	Base
	UserID          int64      `db:"user_id"`
	Doctor          string     `db:"doctor"`
	Specialty       string     `db:"specialty"`
	AppointmentDate time.Time  `db:"appointment_date"`
	EndTime         *time.Time `db:"end_time"`
	Reason          *string    `db:"reason"`
	Status          string     `db:"status"`
}

// AppointmentWithOwner is an appointment joined with its owner's identity.
type AppointmentWithOwner struct {
	Appointment
	Owner
}

type AppointmentResponse struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Doctor    string     `json:"doctor"`
	Specialty string     `json:"specialty"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Reason    *string    `json:"reason"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AdminAppointmentResponse also carries the legacy appointmentDate name and
// the owner's identity.
type AdminAppointmentResponse struct {
	AppointmentResponse
	AppointmentDate time.Time `json:"appointmentDate"`
	PatientName     string    `json:"patientName"`
	PatientEmail    string    `json:"patientEmail"`
}

func (a *Appointment) ToResponse() *AppointmentResponse {
	return &AppointmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Doctor:    a.Doctor,
		Specialty: a.Specialty,
		StartTime: a.AppointmentDate.UTC(),
		EndTime:   utcPtr(a.EndTime),
		Reason:    a.Reason,
		Status:    a.Status,
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
}

func ToAppointmentResponses(items []*Appointment) []*AppointmentResponse {
	out := make([]*AppointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, a.ToResponse())
	}
	return out
}

// ToAdminResponse requires a known owner; see Owner.Known.
func (a *AppointmentWithOwner) ToAdminResponse() *AdminAppointmentResponse {
	return &AdminAppointmentResponse{
		AppointmentResponse: *a.Appointment.ToResponse(),
		AppointmentDate:     a.AppointmentDate.UTC(),
		PatientName:         derefString(a.PatientName),
		PatientEmail:        derefString(a.PatientEmail),
	}
}

type CreateAppointmentRequest struct {
	UserID          int64   `json:"userId" binding:"required"`
	Doctor          string  `json:"doctor" binding:"required"`
	Specialty       string  `json:"specialty" binding:"required"`
	StartTime       string  `json:"startTime" binding:"required_without=AppointmentDate"`
	AppointmentDate string  `json:"appointmentDate" binding:"required_without=StartTime"`
	EndTime         string  `json:"endTime"`
	Reason          *string `json:"reason"`
	Status          string  `json:"status"`
}

// ToAppointment builds the stored record. startTime wins over
// appointmentDate when both are present.
func (r *CreateAppointmentRequest) ToAppointment() (*Appointment, error) {
	start, err := ParseInstant(firstNonEmpty(r.StartTime, r.AppointmentDate))
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalInstant(r.EndTime)
	if err != nil {
		return nil, err
	}

	status := r.Status
	if status == "" {
		status = AppointmentStatusPending
	}

	return &Appointment{
		UserID:          r.UserID,
		Doctor:          r.Doctor,
		Specialty:       r.Specialty,
		AppointmentDate: start,
		EndTime:         end,
		Reason:          r.Reason,
		Status:          status,
	}, nil
}

// UpdateAppointmentRequest is a partial update; absent fields keep their
// stored value and empty dates are treated as absent.
type UpdateAppointmentRequest struct {
	UserID          *int64  `json:"userId"`
	Doctor          *string `json:"doctor"`
	Specialty       *string `json:"specialty"`
	StartTime       *string `json:"startTime"`
	AppointmentDate *string `json:"appointmentDate"`
	EndTime         *string `json:"endTime"`
	Reason          *string `json:"reason"`
	Status          *string `json:"status"`
}

func (r *UpdateAppointmentRequest) Apply(a *Appointment) error {
	start, err := parseOptionalInstant(firstNonEmpty(derefString(r.StartTime), derefString(r.AppointmentDate)))
	if err != nil {
		return err
	}
	end, err := parseOptionalInstant(derefString(r.EndTime))
	if err != nil {
		return err
	}

	if r.UserID != nil {
		a.UserID = *r.UserID
	}
	if r.Doctor != nil {
		a.Doctor = *r.Doctor
	}
	if r.Specialty != nil {
		a.Specialty = *r.Specialty
	}
	if start != nil {
		a.AppointmentDate = *start
	}
	if end != nil {
		a.EndTime = end
	}
	if r.Reason != nil {
		a.Reason = r.Reason
	}
	if r.Status != nil {
		a.Status = *r.Status
	}
	return nil
}
