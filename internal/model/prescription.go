package model

import (
	"time"
)

const PrescriptionStatusActive = "Active"

type Prescription struct {
	Base
	UserID       int64      `db:"user_id"`
	Medication   string     `db:"medication"`
	Dosage       string     `db:"dosage"`
	Instructions *string    `db:"instructions"`
	IssuedAt     time.Time  `db:"issued_at"`
	ExpiresAt    *time.Time `db:"expires_at"`
	Status       string     `db:"status"`
}

type PrescriptionWithOwner struct {
	Prescription
	Owner
}

type PrescriptionResponse struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	Medication   string     `json:"medication"`
	Dosage       string     `json:"dosage"`
	Instructions *string    `json:"instructions"`
	IssuedAt     time.Time  `json:"issuedAt"`
	ExpiresAt    *time.Time `json:"expiresAt"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type AdminPrescriptionResponse struct {
	PrescriptionResponse
	PatientName  string `json:"patientName"`
	PatientEmail string `json:"patientEmail"`
}

func (p *Prescription) ToResponse() *PrescriptionResponse {
	return &PrescriptionResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Medication:   p.Medication,
		Dosage:       p.Dosage,
		Instructions: p.Instructions,
		IssuedAt:     p.IssuedAt.UTC(),
		ExpiresAt:    utcPtr(p.ExpiresAt),
		Status:       p.Status,
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
}

func ToPrescriptionResponses(items []*Prescription) []*PrescriptionResponse {
	out := make([]*PrescriptionResponse, 0, len(items))
	for _, p := range items {
		out = append(out, p.ToResponse())
	}
	return out
}

func (p *PrescriptionWithOwner) ToAdminResponse() *AdminPrescriptionResponse {
	return &AdminPrescriptionResponse{
		PrescriptionResponse: *p.Prescription.ToResponse(),
		PatientName:          derefString(p.PatientName),
		PatientEmail:         derefString(p.PatientEmail),
	}
}

type CreatePrescriptionRequest struct {
	UserID       int64   `json:"userId" binding:"required"`
	Medication   string  `json:"medication" binding:"required"`
	Dosage       string  `json:"dosage" binding:"required"`
	Instructions *string `json:"instructions"`
	IssuedAt     string  `json:"issuedAt"`
	IssuedDate   string  `json:"issuedDate"`
	ExpiresAt    string  `json:"expiresAt"`
	Status       string  `json:"status"`
}

// ToPrescription builds the stored record; issuedAt defaults to now.
func (r *CreatePrescriptionRequest) ToPrescription(now time.Time) (*Prescription, error) {
	issued, err := parseOptionalInstant(firstNonEmpty(r.IssuedAt, r.IssuedDate))
	if err != nil {
		return nil, err
	}
	if issued == nil {
		n := now.UTC()
		issued = &n
	}
	expires, err := parseOptionalInstant(r.ExpiresAt)
	if err != nil {
		return nil, err
	}

	status := r.Status
	if status == "" {
		status = PrescriptionStatusActive
	}

	return &Prescription{
		UserID:       r.UserID,
		Medication:   r.Medication,
		Dosage:       r.Dosage,
		Instructions: r.Instructions,
		IssuedAt:     *issued,
		ExpiresAt:    expires,
		Status:       status,
	}, nil
}

type UpdatePrescriptionRequest struct {
	UserID       *int64  `json:"userId"`
	Medication   *string `json:"medication"`
	Dosage       *string `json:"dosage"`
	Instructions *string `json:"instructions"`
	IssuedAt     *string `json:"issuedAt"`
	IssuedDate   *string `json:"issuedDate"`
	ExpiresAt    *string `json:"expiresAt"`
	Status       *string `json:"status"`
}

func (r *UpdatePrescriptionRequest) Apply(p *Prescription) error {
	issued, err := parseOptionalInstant(firstNonEmpty(derefString(r.IssuedAt), derefString(r.IssuedDate)))
	if err != nil {
		return err
	}
	expires, err := parseOptionalInstant(derefString(r.ExpiresAt))
	if err != nil {
		return err
	}

	if r.UserID != nil {
		p.UserID = *r.UserID
	}
	if r.Medication != nil {
		p.Medication = *r.Medication
	}
	if r.Dosage != nil {
		p.Dosage = *r.Dosage
	}
	if r.Instructions != nil {
		p.Instructions = r.Instructions
	}
	if issued != nil {
		p.IssuedAt = *issued
	}
	if expires != nil {
		p.ExpiresAt = expires
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	return nil
}
