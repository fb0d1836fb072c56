package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	artistModel "xpose-backend/internal/domains/artist/model"
	artistRepo "xpose-backend/internal/domains/artist/repository"
	"xpose-backend/internal/domains/asset/model"
	serieModel "xpose-backend/internal/domains/serie/model"
	serieRepo "xpose-backend/internal/domains/serie/repository"
	"xpose-backend/internal/shared/filter"
	"xpose-backend/pkg/database"
)

var columns = []string{
	"asset.id", "asset.name", "asset.description", "asset.type", "asset.comment",
	"asset.url", "asset.thumbnail_url", "asset.active",
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

func selectAssets() sq.SelectBuilder {
	return filter.Psql.Select(columns...).From("asset").OrderBy("asset.id")
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Asset, error) {
	return r.query(ctx, selectAssets())
}

// Filter folds name, type, active, artistId and collectionId with AND.
func (r *postgresRepository) Filter(ctx context.Context, f model.Filter) ([]model.Asset, error) {
	b := filter.New().
		Contains("asset.name", f.Name).
		Contains("asset.type", f.Type).
		Bool("asset.active", f.Active).
		Related("asset_authors", "asset_id", "artist_id", "asset.id", f.ArtistID).
		Related("asset_series", "asset_id", "serie_id", "asset.id", f.CollectionID)
	if err := b.Err(); err != nil {
		return nil, err
	}
	return r.query(ctx, b.Apply(selectAssets()))
}

func (r *postgresRepository) ListBySerie(ctx context.Context, serieID int64) ([]model.Asset, error) {
	return r.Filter(ctx, model.Filter{CollectionID: strconv.FormatInt(serieID, 10)})
}

func (r *postgresRepository) ListByArtist(ctx context.Context, artistID int64) ([]model.Asset, error) {
	return r.Filter(ctx, model.Filter{ArtistID: strconv.FormatInt(artistID, 10)})
}

func (r *postgresRepository) query(ctx context.Context, q sq.SelectBuilder) ([]model.Asset, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build asset query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer rows.Close()

	assets := make([]model.Asset, 0)
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := hydrate(ctx, r.pool, assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Asset, error) {
	sql, args, err := filter.Psql.Select(columns...).From("asset").Where(sq.Eq{"asset.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build asset query: %w", err)
	}

	a, err := scan(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAssetNotFound
		}
		return nil, err
	}

	one := []model.Asset{a}
	if err := hydrate(ctx, r.pool, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Asset) error {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO asset (name, description, type, comment, url, thumbnail_url, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			a.Name, a.Description, a.Type, a.Comment, a.URL, a.ThumbnailURL, a.Active,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert asset: %w", err)
		}
		return id, linkIDs(ctx, tx, id, a)
	})
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Asset) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE asset
			SET name = $2, description = $3, type = $4, comment = $5, url = $6, thumbnail_url = $7, active = $8
			WHERE id = $1`,
			a.ID, a.Name, a.Description, a.Type, a.Comment, a.URL, a.ThumbnailURL, a.Active,
		)
		if err != nil {
			return fmt.Errorf("update asset: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrAssetNotFound
		}
		return linkIDs(ctx, tx, a.ID, a)
	})
}

// linkIDs replaces the author and serie links of asset id with those listed on a.
func linkIDs(ctx context.Context, q database.Querier, id int64, a *model.Asset) error {
	err := database.ReplaceLinks(ctx, q, "asset_authors", "asset_id", "artist_id", id, artistModel.IDs(a.Authors))
	if database.IsForeignKeyViolation(err) {
		return artistModel.ErrUnknownArtist
	}
	if err != nil {
		return err
	}

	err = database.ReplaceLinks(ctx, q, "asset_series", "asset_id", "serie_id", id, serieModel.IDs(a.Series))
	if database.IsForeignKeyViolation(err) {
		return serieModel.ErrUnknownSerie
	}
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM asset WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAssetNotFound
	}
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM asset`).Scan(&n)
	return n, err
}

func (r *postgresRepository) SetThumbnail(ctx context.Context, id int64, url, thumbnailURL string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE asset SET thumbnail_url = $3 WHERE id = $1 AND url = $2`,
		id, url, thumbnailURL,
	)
	if err != nil {
		return false, fmt.Errorf("set thumbnail: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) ListMissingThumbnails(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM asset
		WHERE thumbnail_url IS NULL AND url <> ''
		ORDER BY id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list missing thumbnails: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scan(row pgx.Row) (model.Asset, error) {
	var a model.Asset
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Type, &a.Comment, &a.URL, &a.ThumbnailURL, &a.Active)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return a, fmt.Errorf("scan asset: %w", err)
	}
	return a, err
}

// hydrate loads authors and series of every asset, one query per relation.
func hydrate(ctx context.Context, q database.Querier, assets []model.Asset) error {
	ids := make([]int64, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}

	authors, err := artistRepo.ListLinked(ctx, q, "asset_authors", "asset_id", ids)
	if err != nil {
		return err
	}
	series, err := serieRepo.ListLinked(ctx, q, "asset_series", "asset_id", ids)
	if err != nil {
		return err
	}

	for i := range assets {
		assets[i].Authors = authors[assets[i].ID]
		if assets[i].Authors == nil {
			assets[i].Authors = make([]artistModel.Artist, 0)
		}
		assets[i].Series = series[assets[i].ID]
		if assets[i].Series == nil {
			assets[i].Series = make([]serieModel.Serie, 0)
		}
	}
	return nil
}
