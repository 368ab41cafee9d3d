package postgres

import (
	"context"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
)

type contactMessageRepository struct {
	BaseRepository
}

func NewContactMessageRepository(base BaseRepository) repository.ContactMessageRepository {
	return &contactMessageRepository{base}
}

func (r *contactMessageRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	msg.CreatedAt = time.Now().UTC()

	err := r.db.QueryRowxContext(ctx, query, msg.Name, msg.Email, msg.Message, msg.CreatedAt).Scan(&msg.ID)
	if err != nil {
		return translateError(err, "Message", "create contact message")
	}

	return nil
}

func (r *contactMessageRepository) Get(ctx context.Context, id int64) (*model.ContactMessage, error) {
	query := `SELECT id, name, email, message, created_at FROM contact_messages WHERE id = $1`

	var msg model.ContactMessage
	if err := r.db.GetContext(ctx, &msg, query, id); err != nil {
		return nil, translateError(err, "Message", "get contact message")
	}

	return &msg, nil
}

func (r *contactMessageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "Message", "delete contact message")
	}

	return expectOne(result, "Message")
}

func (r *contactMessageRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	query := `
		SELECT id, name, email, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
	`

	var msgs []*model.ContactMessage
	if err := r.db.SelectContext(ctx, &msgs, query); err != nil {
		return nil, translateError(err, "Message", "list contact messages")
	}

	return msgs, nil
}
