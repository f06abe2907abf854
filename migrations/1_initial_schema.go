package migrations

import (
	"github.com/go-pg/migrations/v8"
)

// CreateInitialSchema registers the migration creating every index table.
// Cross-reference (xref) columns start at their historical 256-character
// width; migration 2 widens them.
func CreateInitialSchema(col *migrations.Collection) {
	up := []string{
		`CREATE TYPE enum_passworded AS ENUM ('UNKNOWN', 'YES', 'NO', 'MAYBE')`,
		`CREATE TYPE enum_metablack_status AS ENUM ('ATTEMPTED', 'IMPOSSIBLE')`,

		`CREATE TABLE users (
			id serial PRIMARY KEY,
			api_key varchar(32) UNIQUE,
			email text UNIQUE,
			grabs integer DEFAULT 0
		)`,

		`CREATE TABLE groups (
			id serial PRIMARY KEY,
			active boolean DEFAULT false,
			first bigint,
			last bigint,
			name text
		)`,
		`CREATE INDEX groups_active_idx ON groups (active)`,

		`CREATE TABLE regexes (
			id serial PRIMARY KEY,
			regex text,
			description text,
			status boolean DEFAULT true,
			ordinal integer,
			group_name text
		)`,

		`CREATE TABLE blacklists (
			id serial PRIMARY KEY,
			description text,
			group_name text,
			field text NOT NULL DEFAULT 'subject',
			regex text UNIQUE,
			status boolean DEFAULT false
		)`,
		`CREATE INDEX blacklists_group_name_idx ON blacklists (group_name)`,

		`CREATE TABLE categories (
			id serial PRIMARY KEY,
			name text,
			parent_id integer REFERENCES categories (id)
		)`,
		`CREATE INDEX categories_parent_id_idx ON categories (parent_id)`,

		`CREATE TABLE movies (
			id text PRIMARY KEY,
			name text,
			genre text,
			year integer
		)`,
		`CREATE INDEX movies_name_idx ON movies (name)`,
		`CREATE INDEX movies_year_idx ON movies (year)`,

		`CREATE TABLE tvshows (
			id serial PRIMARY KEY,
			name text,
			country varchar(5)
		)`,
		`CREATE INDEX tvshows_name_idx ON tvshows (name)`,

		`CREATE TABLE episodes (
			id serial PRIMARY KEY,
			tvshow_id integer REFERENCES tvshows (id),
			season varchar(10),
			episode varchar(20),
			series_full text,
			air_date varchar(16),
			year varchar(8),
			UNIQUE (tvshow_id, series_full)
		)`,
		`CREATE INDEX episodes_tvshow_id_idx ON episodes (tvshow_id)`,

		`CREATE TABLE nzbs (id serial PRIMARY KEY, data bytea)`,
		`CREATE TABLE nfos (id serial PRIMARY KEY, data bytea)`,
		`CREATE TABLE sfvs (id serial PRIMARY KEY, data bytea)`,

		`CREATE TABLE metablack (
			id serial PRIMARY KEY,
			status enum_metablack_status DEFAULT 'ATTEMPTED',
			time timestamptz DEFAULT now()
		)`,

		`CREATE TABLE binaries (
			id serial PRIMARY KEY,
			hash bigint,
			name text,
			total_parts integer,
			posted timestamptz,
			posted_by text,
			xref varchar(256),
			group_name text,
			regex_id integer REFERENCES regexes (id)
		)`,
		`CREATE INDEX binaries_hash_idx ON binaries (hash)`,
		`CREATE INDEX binaries_name_idx ON binaries (name)`,
		`CREATE INDEX binaries_regex_id_idx ON binaries (regex_id)`,

		`CREATE TABLE parts (
			id bigserial PRIMARY KEY,
			hash bigint,
			subject text,
			total_segments integer,
			posted timestamptz,
			posted_by text,
			xref varchar(256),
			group_name text,
			binary_id integer REFERENCES binaries (id) ON DELETE SET NULL
		)`,
		`CREATE INDEX parts_hash_idx ON parts (hash)`,
		`CREATE INDEX parts_total_segments_idx ON parts (total_segments)`,
		`CREATE INDEX parts_posted_idx ON parts (posted)`,
		`CREATE INDEX parts_group_name_idx ON parts (group_name)`,
		`CREATE INDEX parts_binary_id_idx ON parts (binary_id)`,

		`CREATE TABLE segments (
			id bigserial PRIMARY KEY,
			segment integer,
			size bigint,
			message_id text,
			part_id bigint REFERENCES parts (id) ON DELETE CASCADE
		)`,
		`CREATE INDEX segments_segment_idx ON segments (segment)`,
		`CREATE INDEX segments_part_id_idx ON segments (part_id)`,

		`CREATE TABLE releases (
			id serial PRIMARY KEY,
			added timestamptz DEFAULT now(),
			posted timestamptz,
			name text,
			search_name text,
			posted_by text,
			status integer,
			grabs integer DEFAULT 0,
			size bigint DEFAULT 0,
			passworded enum_passworded DEFAULT 'UNKNOWN',
			unwanted boolean DEFAULT false,
			group_id integer REFERENCES groups (id),
			category_id integer REFERENCES categories (id),
			regex_id integer REFERENCES regexes (id),
			tvshow_id integer REFERENCES tvshows (id),
			episode_id integer REFERENCES episodes (id),
			tvshow_metablack_id integer REFERENCES metablack (id) ON DELETE SET NULL,
			movie_id text REFERENCES movies (id),
			movie_metablack_id integer REFERENCES metablack (id) ON DELETE SET NULL,
			nzb_id integer REFERENCES nzbs (id),
			nfo_id integer REFERENCES nfos (id),
			nfo_metablack_id integer REFERENCES metablack (id) ON DELETE SET NULL,
			sfv_id integer REFERENCES sfvs (id),
			sfv_metablack_id integer REFERENCES metablack (id) ON DELETE SET NULL,
			rar_metablack_id integer REFERENCES metablack (id) ON DELETE SET NULL,
			UNIQUE (name, posted)
		)`,
		`CREATE INDEX releases_search_name_idx ON releases (search_name)`,
		`CREATE INDEX releases_unwanted_idx ON releases (unwanted)`,
		`CREATE INDEX releases_group_id_idx ON releases (group_id)`,
		`CREATE INDEX releases_category_id_idx ON releases (category_id)`,
		`CREATE INDEX releases_regex_id_idx ON releases (regex_id)`,
		`CREATE INDEX releases_tvshow_id_idx ON releases (tvshow_id)`,
		`CREATE INDEX releases_episode_id_idx ON releases (episode_id)`,
		`CREATE INDEX releases_movie_id_idx ON releases (movie_id)`,
		`CREATE INDEX releases_tvshow_metablack_id_idx ON releases (tvshow_metablack_id)`,
		`CREATE INDEX releases_movie_metablack_id_idx ON releases (movie_metablack_id)`,
		`CREATE INDEX releases_nfo_metablack_id_idx ON releases (nfo_metablack_id)`,
		`CREATE INDEX releases_sfv_metablack_id_idx ON releases (sfv_metablack_id)`,
		`CREATE INDEX releases_rar_metablack_id_idx ON releases (rar_metablack_id)`,

		`CREATE TABLE files (
			id serial PRIMARY KEY,
			name text,
			size bigint,
			release_id integer REFERENCES releases (id) ON DELETE CASCADE
		)`,
		`CREATE INDEX files_release_id_idx ON files (release_id)`,

		`CREATE TABLE misses (
			id serial PRIMARY KEY,
			group_name text,
			message bigint NOT NULL,
			attempts integer DEFAULT 0
		)`,
		`CREATE INDEX misses_group_name_idx ON misses (group_name)`,
		`CREATE INDEX misses_message_idx ON misses (message)`,

		`CREATE TABLE datalogs (
			id serial PRIMARY KEY,
			description text
		)`,
		`CREATE INDEX datalogs_description_idx ON datalogs (description)`,
	}
	down := []string{
		`DROP TABLE IF EXISTS datalogs`,
		`DROP TABLE IF EXISTS misses`,
		`DROP TABLE IF EXISTS files`,
		`DROP TABLE IF EXISTS releases`,
		`DROP TABLE IF EXISTS segments`,
		`DROP TABLE IF EXISTS parts`,
		`DROP TABLE IF EXISTS binaries`,
		`DROP TABLE IF EXISTS metablack`,
		`DROP TABLE IF EXISTS sfvs`,
		`DROP TABLE IF EXISTS nfos`,
		`DROP TABLE IF EXISTS nzbs`,
		`DROP TABLE IF EXISTS episodes`,
		`DROP TABLE IF EXISTS tvshows`,
		`DROP TABLE IF EXISTS movies`,
		`DROP TABLE IF EXISTS categories`,
		`DROP TABLE IF EXISTS blacklists`,
		`DROP TABLE IF EXISTS regexes`,
		`DROP TABLE IF EXISTS groups`,
		`DROP TABLE IF EXISTS users`,
		`DROP TYPE IF EXISTS enum_metablack_status`,
		`DROP TYPE IF EXISTS enum_passworded`,
	}
	col.MustRegisterTx(func(db migrations.DB) error {
		return execAll(db, up)
	}, func(db migrations.DB) error {
		return execAll(db, down)
	})
}

func execAll(db migrations.DB, queries []string) error {
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}
