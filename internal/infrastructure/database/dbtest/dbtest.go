// Package dbtest holds helpers for repository tests: a Recorder that captures
// Exec statements, and a Postgres pool for tests gated on XPOSE_TEST_DATABASE_URL.
package dbtest

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"xpose-backend/internal/infrastructure/database"
)

// EnvDSN names the variable holding the DSN of a disposable test database.
const EnvDSN = "XPOSE_TEST_DATABASE_URL"

// Statement is one recorded Exec call with its whitespace collapsed.
type Statement struct {
	SQL  string
	Args []any
}

// Recorder implements database.Querier for Exec-only code. FailOn makes every
// statement containing the given fragment return the mapped error.
type Recorder struct {
	Statements []Statement
	FailOn     map[string]error
}

func (r *Recorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	sql = strings.Join(strings.Fields(sql), " ")
	r.Statements = append(r.Statements, Statement{SQL: sql, Args: args})
	for fragment, err := range r.FailOn {
		if strings.Contains(sql, fragment) {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (r *Recorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("dbtest: Query is not recorded")
}

func (r *Recorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("dbtest: QueryRow is not recorded")
}

// ForeignKeyViolation is the error Postgres returns for SQLSTATE 23503.
func ForeignKeyViolation() error {
	return &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
}

// Pool connects to the database named by EnvDSN, applies the schema and empties
// every table. The test is skipped when the variable is unset.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvDSN)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, database.Schema)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE asset_authors, asset_series, serie_artists, asset, serie,
		artist, website_settings, users, contact_information, address RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}
