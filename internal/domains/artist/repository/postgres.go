package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"xpose-backend/internal/domains/artist/model"
	contactRepo "xpose-backend/internal/domains/contact/repository"
	"xpose-backend/internal/shared/filter"
	"xpose-backend/pkg/database"
)

const artistColumns = `artist.id, artist.name, artist.surname, artist.artistic_name, artist.about`

var (
	columns       = artistColumns + `, ` + contactRepo.Columns
	joinContact   = contactRepo.Join("artist.contact_information_id")
	selectArtists = `SELECT ` + columns + ` FROM artist ` + joinContact
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Artist, error) {
	return r.query(ctx, selectArtists+` ORDER BY artist.id`)
}

// Filter folds the optional criteria with AND; no criteria returns every artist.
func (r *postgresRepository) Filter(ctx context.Context, f model.Filter) ([]model.Artist, error) {
	b := filter.New().
		Contains("artist.name", f.Name).
		Contains("artist.surname", f.Surname).
		Contains("artist.artistic_name", f.ArtisticName)

	q := b.Apply(filter.Psql.Select(columns).From("artist").JoinClause(joinContact)).OrderBy("artist.id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build artist filter: %w", err)
	}
	return r.query(ctx, sql, args...)
}

func (r *postgresRepository) query(ctx context.Context, sql string, args ...any) ([]model.Artist, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query artists: %w", err)
	}
	defer rows.Close()

	artists := make([]model.Artist, 0)
	for rows.Next() {
		a, err := Scan(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	a, err := Scan(r.pool.QueryRow(ctx, selectArtists+` WHERE artist.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Artist) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		contactID, err := contactRepo.Attach(ctx, tx, a.ContactInformation)
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO artist (name, surname, artistic_name, about, contact_information_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			a.Name, a.Surname, a.ArtisticName, a.About, contactID,
		).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Artist) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var previous *int64
		err := tx.QueryRow(ctx, `SELECT contact_information_id FROM artist WHERE id = $1 FOR UPDATE`, a.ID).Scan(&previous)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrArtistNotFound
			}
			return fmt.Errorf("lock artist: %w", err)
		}

		next, err := contactRepo.Attach(ctx, tx, a.ContactInformation)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			UPDATE artist
			SET name = $2, surname = $3, artistic_name = $4, about = $5, contact_information_id = $6
			WHERE id = $1`,
			a.ID, a.Name, a.Surname, a.ArtisticName, a.About, next,
		); err != nil {
			return fmt.Errorf("update artist: %w", err)
		}

		return contactRepo.Detach(ctx, tx, previous, next)
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var contactID *int64
		err := tx.QueryRow(ctx, `DELETE FROM artist WHERE id = $1 RETURNING contact_information_id`, id).Scan(&contactID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrArtistNotFound
			}
			return fmt.Errorf("delete artist: %w", err)
		}
		return contactRepo.Detach(ctx, tx, contactID, nil)
	})
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM artist`).Scan(&n)
	return n, err
}

// Scan reads one row selected with the artist columns followed by the contact columns.
func Scan(row pgx.Row) (model.Artist, error) {
	var a model.Artist
	var contact contactRepo.Nullable

	dest := append([]any{&a.ID, &a.Name, &a.Surname, &a.ArtisticName, &a.About}, contact.Dest()...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return a, err
		}
		return a, fmt.Errorf("scan artist: %w", err)
	}

	a.ContactInformation = contact.Value()
	return a, nil
}

// ListLinked returns, per owner id, the artists linked through joinTable
// (a junction with columns ownerCol and artist_id). Used for serie artists and asset authors.
func ListLinked(ctx context.Context, q database.Querier, joinTable, ownerCol string, ownerIDs []int64) (map[int64][]model.Artist, error) {
	linked := make(map[int64][]model.Artist, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return linked, nil
	}

	sql := `SELECT j.` + ownerCol + `, ` + columns + `
		FROM ` + joinTable + ` j
		JOIN artist ON artist.id = j.artist_id
		` + joinContact + `
		WHERE j.` + ownerCol + ` = ANY($1)
		ORDER BY artist.id`

	rows, err := q.Query(ctx, sql, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", joinTable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID int64
		var a model.Artist
		var contact contactRepo.Nullable

		dest := append([]any{&ownerID, &a.ID, &a.Name, &a.Surname, &a.ArtisticName, &a.About}, contact.Dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", joinTable, err)
		}
		a.ContactInformation = contact.Value()
		linked[ownerID] = append(linked[ownerID], a)
	}

	return linked, rows.Err()
}
