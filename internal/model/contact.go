package model

import "time"

// ContactMessage is an unauthenticated inbound message. It is never updated.
type ContactMessage struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (r *CreateContactRequest) ToContactMessage() *ContactMessage {
	return &ContactMessage{
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
	}
}
