package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	artistModel "xpose-backend/internal/domains/artist/model"
	"xpose-backend/internal/domains/serie/model"
	"xpose-backend/internal/infrastructure/database/dbtest"
)

func TestLinkArtistsMapsUnknownArtist(t *testing.T) {
	rec := &dbtest.Recorder{FailOn: map[string]error{"INSERT INTO serie_artists": dbtest.ForeignKeyViolation()}}
	s := &model.Serie{ID: 3, Artists: []artistModel.Artist{{ID: 404}}}

	err := linkArtists(context.Background(), rec, s)
	assert.ErrorIs(t, err, artistModel.ErrUnknownArtist)
}

func TestLinkArtistsClearsWhenEmpty(t *testing.T) {
	rec := &dbtest.Recorder{}

	require.NoError(t, linkArtists(context.Background(), rec, &model.Serie{ID: 3}))
	require.Len(t, rec.Statements, 1)
	assert.Equal(t, "DELETE FROM serie_artists WHERE serie_id = $1", rec.Statements[0].SQL)
	assert.Equal(t, []any{int64(3)}, rec.Statements[0].Args)
}
