package models

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Movie is external movie metadata keyed by its upstream string id
// (imdb-style), not a surrogate key.
type Movie struct {
	tableName struct{} `pg:"movies,alias:movie"`

	ID    string `pg:"id,pk"`
	Name  string `pg:"name"`
	Genre string `pg:"genre"`
	Year  int    `pg:"year,use_zero"`
}

// GetMovie returns a movie by id, nil when it does not exist.
func GetMovie(ctx context.Context, db orm.DB, id string) (*Movie, error) {
	m := new(Movie)
	err := db.Model(m).
		Context(ctx).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch movie")
	}
	return m, nil
}

// UpsertMovie stores or refreshes movie metadata fetched from upstream.
func UpsertMovie(ctx context.Context, db orm.DB, m *Movie) error {
	_, err := db.Model(m).
		Context(ctx).
		OnConflict("(id) DO UPDATE").
		Set("name = EXCLUDED.name, genre = EXCLUDED.genre, year = EXCLUDED.year").
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to upsert movie")
	}
	return nil
}
