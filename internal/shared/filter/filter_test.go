package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xpose-backend/internal/shared/apperror"
)

const selectIDs = "SELECT id FROM asset"

func TestEmptyBuilderLeavesQueryUnfiltered(t *testing.T) {
	b := New().
		Contains("name", "").
		Contains("type", "   ").
		Bool("active", "").
		Bool("archived", "  ").
		Related("asset_authors", "asset_id", "artist_id", "asset.id", "").
		Related("asset_series", "asset_id", "serie_id", "asset.id", "0")

	require.NoError(t, b.Err())
	assert.True(t, b.Empty())

	sql, args, err := b.Apply(Psql.Select("id").From("asset")).ToSql()
	require.NoError(t, err)
	assert.Equal(t, selectIDs, sql)
	assert.Empty(t, args)
}

func TestContainsFoldsValue(t *testing.T) {
	b := New().Contains("name", "JOSÉ")

	sql, args, err := b.Apply(Psql.Select("id").From("asset")).ToSql()
	require.NoError(t, err)
	assert.Equal(t, selectIDs+" WHERE (lower(unaccent(name)) LIKE $1)", sql)
	assert.Equal(t, []interface{}{"%jose%"}, args)
}

func TestContainsEscapesWildcards(t *testing.T) {
	b := New().Contains("name", `50%_off\`)

	_, args, err := b.Sqlizer().ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}

func TestPredicatesAreJoinedWithAnd(t *testing.T) {
	b := New().
		Contains("name", "Sol").
		Contains("type", "").
		Bool("active", "false").
		Related("asset_authors", "asset_id", "artist_id", "asset.id", "3").
		Related("asset_series", "asset_id", "serie_id", "asset.id", "9")

	require.NoError(t, b.Err())
	assert.False(t, b.Empty())

	sql, args, err := b.Apply(Psql.Select("id").From("asset")).ToSql()
	require.NoError(t, err)

	assert.Equal(t, selectIDs+" WHERE (lower(unaccent(name)) LIKE $1"+
		" AND active = $2"+
		" AND EXISTS (SELECT 1 FROM asset_authors WHERE asset_authors.asset_id = asset.id AND asset_authors.artist_id = $3)"+
		" AND EXISTS (SELECT 1 FROM asset_series WHERE asset_series.asset_id = asset.id AND asset_series.serie_id = $4))", sql)
	assert.Equal(t, []interface{}{"%sol%", false, int64(3), int64(9)}, args)
}

func TestRelatedRejectsMalformedID(t *testing.T) {
	b := New().Related("serie_artists", "serie_id", "artist_id", "serie.id", "abc")

	assert.ErrorIs(t, b.Err(), apperror.ErrInvalid)
	assert.True(t, b.Empty())
}

func TestBoolParsesFlag(t *testing.T) {
	tests := []struct {
		raw  string
		want interface{}
	}{
		{"true", true},
		{"1", true},
		{"FALSE", false},
		{" false ", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, args, err := New().Bool("active", tt.raw).Sqlizer().ToSql()
			require.NoError(t, err)
			assert.Equal(t, []interface{}{tt.want}, args)
		})
	}
}

func TestBoolRejectsMalformedFlag(t *testing.T) {
	b := New().Bool("active", "maybe")

	assert.ErrorIs(t, b.Err(), apperror.ErrInvalid)
	assert.True(t, b.Empty())
}
