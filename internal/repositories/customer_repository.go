package repositories

import (
	"context"

	"paydocs-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(owner_id, name, email, address)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		c.OwnerID, c.Name, c.Email, c.Address,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Get retrieves a customer owned by the given user
func (r *CustomerRepository) Get(ctx context.Context, ownerID, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, owner_id, name, email, address, created_at, updated_at
         FROM customers WHERE id=$1 AND owner_id=$2`, id, ownerID)

	var c models.Customer
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

// List returns all customers owned by the given user
func (r *CustomerRepository) List(ctx context.Context, ownerID int) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, owner_id, name, email, address, created_at, updated_at
         FROM customers WHERE owner_id=$1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE customers SET name=$1, email=$2, address=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4 AND owner_id=$5`,
		c.Name, c.Email, c.Address, c.ID, c.OwnerID)
	return err
}

func (r *CustomerRepository) Delete(ctx context.Context, ownerID, id int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM customers WHERE id=$1 AND owner_id=$2`, id, ownerID)
	return err
}
