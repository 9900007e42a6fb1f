package repository

import (
	"context"
	"errors"
	"log/slog"

	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facegate/facegate/internal/entity"
)

// TemplateRepository is the biometric vault: one encrypted template row
// per employee. A row is only ever written as a whole (single-statement
// UPSERT), so a reader can never observe a cipher_text paired with the
// nonce of a different enrollment.
type TemplateRepository struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) StoreTemplate(ctx context.Context, tpl entity.BiometricTemplate) error {
	q := `
	INSERT INTO biometric_templates (employee_id, cipher_text, nonce, enrolled_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (employee_id) DO UPDATE
	SET cipher_text = EXCLUDED.cipher_text,
	    nonce = EXCLUDED.nonce,
	    enrolled_at = EXCLUDED.enrolled_at
	`

	_, err := r.db.Exec(ctx, q, tpl.EmployeeID, tpl.CipherText, tpl.Nonce, tpl.EnrolledAt)
	if err != nil {
		return err
	}

	return nil
}

// FetchAllTemplates returns every enrolled template in one snapshot read.
// A row that cannot be scanned is skipped and logged as an anomaly rather
// than failing the sweep: one corrupted record must not deny access to
// the rest of the population.
func (r *TemplateRepository) FetchAllTemplates(ctx context.Context) ([]entity.BiometricTemplate, error) {
	q := `
		SELECT employee_id, cipher_text, nonce, enrolled_at
		FROM biometric_templates
		ORDER BY employee_id
	`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var templates []entity.BiometricTemplate

	for rows.Next() {
		var tpl entity.BiometricTemplate

		err := rows.Scan(&tpl.EmployeeID, &tpl.CipherText, &tpl.Nonce, &tpl.EnrolledAt)
		if err != nil {
			slog.ErrorContext(ctx, "skipping unreadable biometric template row", "error", err)
			continue
		}

		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *TemplateRepository) FetchTemplate(ctx context.Context, employeeID int64) (entity.BiometricTemplate, error) {
	var tpl entity.BiometricTemplate

	q := `
		SELECT employee_id, cipher_text, nonce, enrolled_at
		FROM biometric_templates
		WHERE employee_id = $1
	`

	err := r.db.QueryRow(ctx, q, employeeID).Scan(&tpl.EmployeeID, &tpl.CipherText, &tpl.Nonce, &tpl.EnrolledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tpl, entity.ErrNotFound
		}

		return tpl, err
	}

	return tpl, nil
}

func (r *TemplateRepository) DeleteTemplate(ctx context.Context, employeeID int64) error {
	q := `DELETE FROM biometric_templates WHERE employee_id = $1`

	tag, err := r.db.Exec(ctx, q, employeeID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
