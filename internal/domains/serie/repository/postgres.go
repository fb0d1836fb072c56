package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	artistModel "xpose-backend/internal/domains/artist/model"
	artistRepo "xpose-backend/internal/domains/artist/repository"
	"xpose-backend/internal/domains/serie/model"
	"xpose-backend/internal/shared/filter"
	"xpose-backend/pkg/database"
)

const columns = `serie.id, serie.name, serie.description, serie.active`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Serie, error) {
	return r.query(ctx, `SELECT `+columns+` FROM serie ORDER BY serie.id`)
}

func (r *postgresRepository) ListActive(ctx context.Context) ([]model.Serie, error) {
	return r.query(ctx, `SELECT `+columns+` FROM serie WHERE serie.active ORDER BY serie.id`)
}

// Filter folds name, artistId and active with AND.
func (r *postgresRepository) Filter(ctx context.Context, f model.Filter) ([]model.Serie, error) {
	b := filter.New().
		Contains("serie.name", f.Name).
		Related("serie_artists", "serie_id", "artist_id", "serie.id", f.ArtistID).
		Bool("serie.active", f.Active)
	if err := b.Err(); err != nil {
		return nil, err
	}

	sql, args, err := b.Apply(filter.Psql.Select(columns).From("serie")).OrderBy("serie.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build serie filter: %w", err)
	}
	return r.query(ctx, sql, args...)
}

func (r *postgresRepository) query(ctx context.Context, sql string, args ...any) ([]model.Serie, error) {
	series, err := scanAll(ctx, r.pool, sql, args...)
	if err != nil {
		return nil, err
	}
	if err := hydrate(ctx, r.pool, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Serie, error) {
	var s model.Serie
	err := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM serie WHERE serie.id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSerieNotFound
		}
		return nil, fmt.Errorf("get serie: %w", err)
	}

	one := []model.Serie{s}
	if err := hydrate(ctx, r.pool, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *postgresRepository) Create(ctx context.Context, s *model.Serie) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO serie (name, description, active)
			VALUES ($1, $2, $3)
			RETURNING id`,
			s.Name, s.Description, s.Active,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert serie: %w", err)
		}
		return linkArtists(ctx, tx, s)
	})
}

func (r *postgresRepository) Update(ctx context.Context, s *model.Serie) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE serie SET name = $2, description = $3, active = $4
			WHERE id = $1`,
			s.ID, s.Name, s.Description, s.Active,
		)
		if err != nil {
			return fmt.Errorf("update serie: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrSerieNotFound
		}
		return linkArtists(ctx, tx, s)
	})
}

func linkArtists(ctx context.Context, q database.Querier, s *model.Serie) error {
	err := database.ReplaceLinks(ctx, q, "serie_artists", "serie_id", "artist_id", s.ID, artistModel.IDs(s.Artists))
	if database.IsForeignKeyViolation(err) {
		return artistModel.ErrUnknownArtist
	}
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM serie WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete serie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSerieNotFound
	}
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM serie`).Scan(&n)
	return n, err
}

func scanAll(ctx context.Context, q database.Querier, sql string, args ...any) ([]model.Serie, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	series := make([]model.Serie, 0)
	for rows.Next() {
		var s model.Serie
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Active); err != nil {
			return nil, fmt.Errorf("scan serie: %w", err)
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

// hydrate loads the artists of every serie with a single query.
func hydrate(ctx context.Context, q database.Querier, series []model.Serie) error {
	linked, err := artistRepo.ListLinked(ctx, q, "serie_artists", "serie_id", model.IDs(series))
	if err != nil {
		return err
	}
	for i := range series {
		series[i].Artists = linked[series[i].ID]
		if series[i].Artists == nil {
			series[i].Artists = make([]artistModel.Artist, 0)
		}
	}
	return nil
}

// ListLinked returns, per owner id, the series linked through joinTable
// (a junction with columns ownerCol and serie_id), artists included.
func ListLinked(ctx context.Context, q database.Querier, joinTable, ownerCol string, ownerIDs []int64) (map[int64][]model.Serie, error) {
	linked := make(map[int64][]model.Serie, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return linked, nil
	}

	rows, err := q.Query(ctx, `
		SELECT j.`+ownerCol+`, `+columns+`
		FROM `+joinTable+` j
		JOIN serie ON serie.id = j.serie_id
		WHERE j.`+ownerCol+` = ANY($1)
		ORDER BY serie.id`, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", joinTable, err)
	}

	type pair struct {
		owner int64
		serie model.Serie
	}
	var pairs []pair
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.owner, &p.serie.ID, &p.serie.Name, &p.serie.Description, &p.serie.Active); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan %s: %w", joinTable, err)
		}
		pairs = append(pairs, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	series := make([]model.Serie, 0, len(pairs))
	for _, p := range pairs {
		series = append(series, p.serie)
	}
	if err := hydrate(ctx, q, series); err != nil {
		return nil, err
	}

	for i, p := range pairs {
		linked[p.owner] = append(linked[p.owner], series[i])
	}
	return linked, nil
}
