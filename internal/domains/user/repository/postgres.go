package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"xpose-backend/internal/domains/user/model"
	"xpose-backend/internal/shared/filter"
	"xpose-backend/pkg/database"
)

var columns = []string{"id", "username", "email", "password_hash", "name", "surname"}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

func selectUsers() sq.SelectBuilder {
	return filter.Psql.Select(columns...).From("users")
}

func (r *postgresRepository) List(ctx context.Context) ([]model.User, error) {
	return r.query(ctx, selectUsers().OrderBy("id"))
}

// Filter folds name, surname and email with AND.
func (r *postgresRepository) Filter(ctx context.Context, f model.Filter) ([]model.User, error) {
	b := filter.New().
		Contains("name", f.Name).
		Contains("surname", f.Surname).
		Contains("email", f.Email)
	return r.query(ctx, b.Apply(selectUsers()).OrderBy("id"))
}

func (r *postgresRepository) query(ctx context.Context, q sq.SelectBuilder) ([]model.User, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, selectUsers().Where(sq.Eq{"id": id}))
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, selectUsers().Where(sq.Eq{"email": email}))
}

func (r *postgresRepository) getOne(ctx context.Context, q sq.SelectBuilder) (*model.User, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	u, err := scan(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, name, surname)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		u.Username, u.Email, u.PasswordHash, u.Name, u.Surname,
	).Scan(&u.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, u *model.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, name = $5, surname = $6
		WHERE id = $1`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Name, u.Surname,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func scan(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.Surname)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return u, fmt.Errorf("scan user: %w", err)
	}
	return u, err
}
