package postgres

import (
	"context"
	"time"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
)

const prescriptionColumns = `p.id, p.user_id, p.medication, p.dosage, p.instructions,
	p.issued_at, p.expires_at, p.status, p.created_at, p.updated_at`

const prescriptionWithOwnerSelect = `
	SELECT ` + prescriptionColumns + `,
		u.full_name AS patient_name,
		u.email AS patient_email
	FROM prescriptions p
	LEFT JOIN users u ON u.id = p.user_id
`

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(base BaseRepository) repository.PrescriptionRepository {
	return &prescriptionRepository{base}
}

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			user_id, medication, dosage, instructions, issued_at,
			expires_at, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := r.db.QueryRowxContext(ctx, query,
		p.UserID,
		p.Medication,
		p.Dosage,
		p.Instructions,
		p.IssuedAt,
		p.ExpiresAt,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return translateError(err, "Prescription", "create prescription")
	}

	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions p WHERE p.id = $1`

	var p model.Prescription
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, translateError(err, "Prescription", "get prescription")
	}

	return &p, nil
}

func (r *prescriptionRepository) GetWithOwner(ctx context.Context, id int64) (*model.PrescriptionWithOwner, error) {
	query := prescriptionWithOwnerSelect + ` WHERE p.id = $1`

	var p model.PrescriptionWithOwner
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, translateError(err, "Prescription", "get prescription")
	}

	return &p, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, p *model.Prescription) error {
	query := `
		UPDATE prescriptions SET
			user_id = $1,
			medication = $2,
			dosage = $3,
			instructions = $4,
			issued_at = $5,
			expires_at = $6,
			status = $7,
			updated_at = $8
		WHERE id = $9
	`

	p.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		p.UserID,
		p.Medication,
		p.Dosage,
		p.Instructions,
		p.IssuedAt,
		p.ExpiresAt,
		p.Status,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return translateError(err, "Prescription", "update prescription")
	}

	return expectOne(result, "Prescription")
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "Prescription", "delete prescription")
	}

	return expectOne(result, "Prescription")
}

func (r *prescriptionRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Prescription, error) {
	query := `
		SELECT ` + prescriptionColumns + `
		FROM prescriptions p
		WHERE p.user_id = $1
		ORDER BY p.issued_at DESC, p.id DESC
	`

	var items []*model.Prescription
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, translateError(err, "Prescription", "list prescriptions")
	}

	return items, nil
}

func (r *prescriptionRepository) ListWithOwner(ctx context.Context) ([]*model.PrescriptionWithOwner, error) {
	query := prescriptionWithOwnerSelect + ` ORDER BY p.issued_at DESC, p.id DESC`

	var items []*model.PrescriptionWithOwner
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, translateError(err, "Prescription", "list prescriptions")
	}

	return items, nil
}
