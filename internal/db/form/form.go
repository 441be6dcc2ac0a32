package form

import (
	"context"
	"errors"
	e "formcaptcha/internal/core/domain/errors"
	"formcaptcha/internal/core/domain/form"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PgxFormRepository struct {
	db *pgxpool.Pool
}

func NewPgxFormRepository(db *pgxpool.Pool) *PgxFormRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxFormRepository{db: db}
}

func (r *PgxFormRepository) GetByID(ctx context.Context, id form.ID) (f form.Form, err error) {
	row := r.db.QueryRow(ctx, `SELECT id, title FROM form WHERE id = $1`, int64(id))
	var rawID int64
	err = row.Scan(&rawID, &f.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return f, form.ErrFormDoesNotExist
	}
	if err != nil {
		return f, err
	}
	f.ID = form.ID(rawID)
	return f, nil
}

func (r *PgxFormRepository) HasCaptcha(ctx context.Context, id form.ID) (hasCaptcha bool, err error) {
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM field WHERE form_id = $1 AND type = $2)`,
		int64(id),
		string(form.FieldTypeCaptcha),
	).Scan(&hasCaptcha)
	return hasCaptcha, err
}

func (r *PgxFormRepository) ListFields(ctx context.Context, id form.ID) ([]form.Field, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, form_id, type, title, marker FROM field WHERE form_id = $1 ORDER BY sorting, id`,
		int64(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := make([]form.Field, 0)
	for rows.Next() {
		var fieldID, formID int64
		var fieldType string
		field := form.Field{}
		if err := rows.Scan(&fieldID, &formID, &fieldType, &field.Title, &field.Marker); err != nil {
			return nil, err
		}
		field.ID = form.FieldID(fieldID)
		field.FormID = form.ID(formID)
		field.Type = form.FieldType(fieldType)
		fields = append(fields, field)
	}
	return fields, rows.Err()
}
