package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EnsureSchema creates the unaccent extension and every table if missing.
// There is no migration tooling; the statements are idempotent and run at startup.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return errNoPool
	}

	if _, err := db.Pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Info().Msg("[DATABASE] Schema is up to date")
	return nil
}

// Schema is the bootstrap DDL for the whole application.
const Schema = `
CREATE EXTENSION IF NOT EXISTS unaccent;

CREATE TABLE IF NOT EXISTS address (
    id          BIGSERIAL PRIMARY KEY,
    street      TEXT NOT NULL,
    number      TEXT NOT NULL DEFAULT '',
    city        TEXT NOT NULL,
    postal_code TEXT NOT NULL,
    country     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS contact_information (
    id           BIGSERIAL PRIMARY KEY,
    email        TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    address_id   BIGINT REFERENCES address(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS artist (
    id                     BIGSERIAL PRIMARY KEY,
    name                   TEXT NOT NULL DEFAULT '',
    surname                TEXT NOT NULL DEFAULT '',
    artistic_name          TEXT NOT NULL DEFAULT '',
    about                  TEXT NOT NULL DEFAULT '',
    contact_information_id BIGINT REFERENCES contact_information(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS serie (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL,
    active      BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS serie_artists (
    serie_id  BIGINT NOT NULL REFERENCES serie(id) ON DELETE CASCADE,
    artist_id BIGINT NOT NULL REFERENCES artist(id) ON DELETE CASCADE,
    PRIMARY KEY (serie_id, artist_id)
);

CREATE TABLE IF NOT EXISTS asset (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL,
    description   TEXT NOT NULL,
    type          TEXT NOT NULL,
    comment       TEXT NOT NULL DEFAULT '',
    url           TEXT NOT NULL DEFAULT '',
    thumbnail_url TEXT,
    active        BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS asset_authors (
    asset_id  BIGINT NOT NULL REFERENCES asset(id) ON DELETE CASCADE,
    artist_id BIGINT NOT NULL REFERENCES artist(id) ON DELETE CASCADE,
    PRIMARY KEY (asset_id, artist_id)
);

CREATE TABLE IF NOT EXISTS asset_series (
    asset_id BIGINT NOT NULL REFERENCES asset(id) ON DELETE CASCADE,
    serie_id BIGINT NOT NULL REFERENCES serie(id) ON DELETE CASCADE,
    PRIMARY KEY (asset_id, serie_id)
);

CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    username      TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL DEFAULT '',
    name          TEXT NOT NULL DEFAULT '',
    surname       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS website_settings (
    id                     BIGSERIAL PRIMARY KEY,
    name                   TEXT NOT NULL,
    website_name           TEXT NOT NULL,
    fav_icon_url           TEXT NOT NULL DEFAULT '',
    contact_information_id BIGINT REFERENCES contact_information(id) ON DELETE SET NULL,
    created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
