package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	contactRepo "xpose-backend/internal/domains/contact/repository"
	"xpose-backend/internal/domains/settings/model"
	"xpose-backend/pkg/database"
)

var selectSettings = `SELECT ws.id, ws.name, ws.website_name, ws.fav_icon_url, ` + contactRepo.Columns + `
	FROM website_settings ws ` + contactRepo.Join("ws.contact_information_id")

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

func (r *postgresRepository) List(ctx context.Context) ([]model.WebsiteSettings, error) {
	rows, err := r.pool.Query(ctx, selectSettings+` ORDER BY ws.id`)
	if err != nil {
		return nil, fmt.Errorf("list website settings: %w", err)
	}
	defer rows.Close()

	settings := make([]model.WebsiteSettings, 0)
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.WebsiteSettings, error) {
	return r.getOne(ctx, selectSettings+` WHERE ws.id = $1`, id)
}

func (r *postgresRepository) Current(ctx context.Context) (*model.WebsiteSettings, error) {
	return r.getOne(ctx, selectSettings+` ORDER BY ws.created_at DESC, ws.id DESC LIMIT 1`)
}

func (r *postgresRepository) getOne(ctx context.Context, sql string, args ...any) (*model.WebsiteSettings, error) {
	s, err := scan(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSettingsNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepository) Create(ctx context.Context, s *model.WebsiteSettings) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		contactID, err := contactRepo.Attach(ctx, tx, s.ContactInformation)
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO website_settings (name, website_name, fav_icon_url, contact_information_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			s.Name, s.WebsiteName, s.FavIconURL, contactID,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert website settings: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) Update(ctx context.Context, s *model.WebsiteSettings) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var previous *int64
		err := tx.QueryRow(ctx, `SELECT contact_information_id FROM website_settings WHERE id = $1 FOR UPDATE`, s.ID).Scan(&previous)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrSettingsNotFound
			}
			return fmt.Errorf("lock website settings: %w", err)
		}

		next, err := contactRepo.Attach(ctx, tx, s.ContactInformation)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			UPDATE website_settings
			SET name = $2, website_name = $3, fav_icon_url = $4, contact_information_id = $5
			WHERE id = $1`,
			s.ID, s.Name, s.WebsiteName, s.FavIconURL, next,
		); err != nil {
			return fmt.Errorf("update website settings: %w", err)
		}

		return contactRepo.Detach(ctx, tx, previous, next)
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var contactID *int64
		err := tx.QueryRow(ctx, `DELETE FROM website_settings WHERE id = $1 RETURNING contact_information_id`, id).Scan(&contactID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrSettingsNotFound
			}
			return fmt.Errorf("delete website settings: %w", err)
		}
		return contactRepo.Detach(ctx, tx, contactID, nil)
	})
}

func scan(row pgx.Row) (model.WebsiteSettings, error) {
	var s model.WebsiteSettings
	var contact contactRepo.Nullable

	dest := append([]any{&s.ID, &s.Name, &s.WebsiteName, &s.FavIconURL}, contact.Dest()...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("scan website settings: %w", err)
	}

	s.ContactInformation = contact.Value()
	return s, nil
}
