package model

import (
	"time"
)

// Base contains common fields for all stored records
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Owner is the display identity of the user owning a record, joined at read
// time for admin views.
type Owner struct {
	PatientName  *string `db:"patient_name"`
	PatientEmail *string `db:"patient_email"`
}

// Known reports whether the join found the owning user.
func (o Owner) Known() bool {
	return o.PatientName != nil && o.PatientEmail != nil
}
