package repositories

import (
	"context"

	"paydocs-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CompanyRepository struct {
	DB *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

// Get retrieves the company profile for a user. Returns pgx.ErrNoRows if
// the profile has never been saved.
func (r *CompanyRepository) Get(ctx context.Context, ownerID int) (*models.CompanyProfile, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, owner_id, name, address, email, abn, logo_key, created_at, updated_at
         FROM company_profiles WHERE owner_id=$1`, ownerID)

	var p models.CompanyProfile
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Email, &p.ABN,
		&p.LogoKey, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// Upsert creates or replaces the profile fields for a user, leaving the
// stored logo key untouched.
func (r *CompanyRepository) Upsert(ctx context.Context, p *models.CompanyProfile) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO company_profiles(owner_id, name, address, email, abn)
         VALUES($1, $2, $3, $4, $5)
         ON CONFLICT (owner_id) DO UPDATE
         SET name=EXCLUDED.name, address=EXCLUDED.address, email=EXCLUDED.email,
             abn=EXCLUDED.abn, updated_at=CURRENT_TIMESTAMP
         RETURNING id, logo_key, created_at, updated_at`,
		p.OwnerID, p.Name, p.Address, p.Email, p.ABN,
	).Scan(&p.ID, &p.LogoKey, &p.CreatedAt, &p.UpdatedAt)
}

// SetLogoKey stores the object-storage key of the uploaded logo, creating
// an empty profile row if none exists yet.
func (r *CompanyRepository) SetLogoKey(ctx context.Context, ownerID int, logoKey string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO company_profiles(owner_id, logo_key)
         VALUES($1, $2)
         ON CONFLICT (owner_id) DO UPDATE
         SET logo_key=EXCLUDED.logo_key, updated_at=CURRENT_TIMESTAMP`,
		ownerID, logoKey)
	return err
}
