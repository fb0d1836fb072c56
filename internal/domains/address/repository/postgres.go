package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"xpose-backend/internal/domains/address/model"
	"xpose-backend/pkg/database"
)

const columns = `id, street, number, city, postal_code, country`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Address, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM address ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]model.Address, 0)
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.Street, &a.Number, &a.City, &a.PostalCode, &a.Country); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	return addresses, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	return Get(ctx, r.pool, id)
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Address) error {
	return Insert(ctx, r.pool, a)
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Address) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE address
		SET street = $2, number = $3, city = $4, postal_code = $5, country = $6
		WHERE id = $1`,
		a.ID, a.Street, a.Number, a.City, a.PostalCode, a.Country,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAddressNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	return DeleteByID(ctx, r.pool, id)
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM address`).Scan(&n)
	return n, err
}

// Get, Insert and DeleteByID accept a Querier so that the owner of an address
// (contact information) can run them inside its own transaction.

func Get(ctx context.Context, q database.Querier, id int64) (*model.Address, error) {
	var a model.Address
	err := q.QueryRow(ctx, `SELECT `+columns+` FROM address WHERE id = $1`, id).
		Scan(&a.ID, &a.Street, &a.Number, &a.City, &a.PostalCode, &a.Country)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAddressNotFound
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &a, nil
}

// Insert stores a and sets its ID.
func Insert(ctx context.Context, q database.Querier, a *model.Address) error {
	err := q.QueryRow(ctx, `
		INSERT INTO address (street, number, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		a.Street, a.Number, a.City, a.PostalCode, a.Country,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

func DeleteByID(ctx context.Context, q database.Querier, id int64) error {
	tag, err := q.Exec(ctx, `DELETE FROM address WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAddressNotFound
	}
	return nil
}
