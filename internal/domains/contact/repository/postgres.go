package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	addressModel "xpose-backend/internal/domains/address/model"
	addressRepo "xpose-backend/internal/domains/address/repository"
	"xpose-backend/internal/domains/contact/model"
	"xpose-backend/pkg/database"
)

// Columns and Join let owners of a contact (artist, website settings) load it
// in the same query. The owner's FK column is passed to Join.
const Columns = `ci.id, ci.email, ci.phone_number, ad.id, ad.street, ad.number, ad.city, ad.postal_code, ad.country`

func Join(ownerFK string) string {
	return `LEFT JOIN contact_information ci ON ci.id = ` + ownerFK + `
		LEFT JOIN address ad ON ad.id = ci.address_id`
}

// Nullable receives the Columns of a LEFT JOIN.
type Nullable struct {
	id         *int64
	email      *string
	phone      *string
	addressID  *int64
	street     *string
	number     *string
	city       *string
	postalCode *string
	country    *string
}

// Dest returns the scan destinations, in Columns order.
func (n *Nullable) Dest() []any {
	return []any{&n.id, &n.email, &n.phone, &n.addressID, &n.street, &n.number, &n.city, &n.postalCode, &n.country}
}

// Value returns nil when the joined contact was absent.
func (n *Nullable) Value() *model.ContactInformation {
	if n.id == nil {
		return nil
	}
	c := &model.ContactInformation{ID: *n.id, Email: deref(n.email), PhoneNumber: deref(n.phone)}
	if n.addressID != nil {
		c.Address = &addressModel.Address{
			ID:         *n.addressID,
			Street:     deref(n.street),
			Number:     deref(n.number),
			City:       deref(n.city),
			PostalCode: deref(n.postalCode),
			Country:    deref(n.country),
		}
	}
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const selectContacts = `SELECT ` + Columns + `
	FROM contact_information ci
	LEFT JOIN address ad ON ad.id = ci.address_id`

func (r *postgresRepository) List(ctx context.Context) ([]model.ContactInformation, error) {
	rows, err := r.pool.Query(ctx, selectContacts+` ORDER BY ci.id`)
	if err != nil {
		return nil, fmt.Errorf("list contact information: %w", err)
	}
	defer rows.Close()

	contacts := make([]model.ContactInformation, 0)
	for rows.Next() {
		var n Nullable
		if err := rows.Scan(n.Dest()...); err != nil {
			return nil, fmt.Errorf("scan contact information: %w", err)
		}
		contacts = append(contacts, *n.Value())
	}

	return contacts, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.ContactInformation, error) {
	return Get(ctx, r.pool, id)
}

func (r *postgresRepository) Create(ctx context.Context, c *model.ContactInformation) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return Insert(ctx, tx, c)
	})
}

func (r *postgresRepository) Update(ctx context.Context, c *model.ContactInformation) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return Replace(ctx, tx, c)
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return Remove(ctx, tx, id)
	})
}

// Get loads one contact with its address.
func Get(ctx context.Context, q database.Querier, id int64) (*model.ContactInformation, error) {
	var n Nullable
	err := q.QueryRow(ctx, selectContacts+` WHERE ci.id = $1`, id).Scan(n.Dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact information: %w", err)
	}
	return n.Value(), nil
}

// Insert stores the address (if any) then the contact, and sets both ids.
func Insert(ctx context.Context, q database.Querier, c *model.ContactInformation) error {
	var addressID *int64
	if c.Address != nil {
		if err := addressRepo.Insert(ctx, q, c.Address); err != nil {
			return err
		}
		addressID = &c.Address.ID
	}

	err := q.QueryRow(ctx, `
		INSERT INTO contact_information (email, phone_number, address_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		c.Email, c.PhoneNumber, addressID,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert contact information: %w", err)
	}
	return nil
}

// Replace writes c over the stored row. When c carries a new address (no id)
// it is inserted and the previous one deleted; a nil address clears it.
func Replace(ctx context.Context, q database.Querier, c *model.ContactInformation) error {
	var current *int64
	err := q.QueryRow(ctx, `SELECT address_id FROM contact_information WHERE id = $1 FOR UPDATE`, c.ID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrContactNotFound
		}
		return fmt.Errorf("lock contact information: %w", err)
	}

	var next *int64
	if c.Address != nil {
		if c.Address.ID == 0 {
			if err := addressRepo.Insert(ctx, q, c.Address); err != nil {
				return err
			}
		}
		next = &c.Address.ID
	}

	if _, err := q.Exec(ctx, `
		UPDATE contact_information
		SET email = $2, phone_number = $3, address_id = $4
		WHERE id = $1`,
		c.ID, c.Email, c.PhoneNumber, next,
	); err != nil {
		return fmt.Errorf("update contact information: %w", err)
	}

	if current != nil && (next == nil || *next != *current) {
		if err := addressRepo.DeleteByID(ctx, q, *current); err != nil && !errors.Is(err, addressModel.ErrAddressNotFound) {
			return err
		}
	}
	return nil
}

// Attach is used by owners of a contact. It inserts c when it has no id yet and
// returns the id the owner row should reference (nil for no contact).
func Attach(ctx context.Context, q database.Querier, c *model.ContactInformation) (*int64, error) {
	if c == nil {
		return nil, nil
	}
	if c.ID == 0 {
		if err := Insert(ctx, q, c); err != nil {
			return nil, err
		}
	}
	return &c.ID, nil
}

// Detach removes the contact an owner referenced before, once it references next instead.
func Detach(ctx context.Context, q database.Querier, previous, next *int64) error {
	if previous == nil || (next != nil && *next == *previous) {
		return nil
	}
	if err := Remove(ctx, q, *previous); err != nil && !errors.Is(err, model.ErrContactNotFound) {
		return err
	}
	return nil
}

// Remove deletes the contact and then its address.
func Remove(ctx context.Context, q database.Querier, id int64) error {
	var addressID *int64
	err := q.QueryRow(ctx, `DELETE FROM contact_information WHERE id = $1 RETURNING address_id`, id).Scan(&addressID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrContactNotFound
		}
		return fmt.Errorf("delete contact information: %w", err)
	}

	if addressID != nil {
		if err := addressRepo.DeleteByID(ctx, q, *addressID); err != nil && !errors.Is(err, addressModel.ErrAddressNotFound) {
			return err
		}
	}
	return nil
}
