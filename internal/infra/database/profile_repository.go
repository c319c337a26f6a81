package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, full_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			full_name = COALESCE(NULLIF(EXCLUDED.full_name, ''), profiles.full_name),
			email = COALESCE(NULLIF(EXCLUDED.email, ''), profiles.email),
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(ctx, query, p.ID, p.FullName, p.Email).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `
		SELECT id, COALESCE(full_name, ''), COALESCE(email, ''), created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var p entity.Profile
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.FullName, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
