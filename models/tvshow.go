package models

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// TvShow is external TV show metadata.
type TvShow struct {
	tableName struct{} `pg:"tvshows,alias:tvshow"`

	ID      int    `pg:"id,pk"`
	Name    string `pg:"name"`
	Country string `pg:"country"`
}

// Episode identifies one aired episode of a show. (tvshow_id, series_full)
// pairs are unique.
type Episode struct {
	tableName struct{} `pg:"episodes,alias:episode"`

	ID         int    `pg:"id,pk"`
	TvShowID   int    `pg:"tvshow_id"`
	Season     string `pg:"season"`
	Episode    string `pg:"episode"`
	SeriesFull string `pg:"series_full"`
	AirDate    string `pg:"air_date"`
	Year       string `pg:"year"`
}

// GetTvShow returns a show by id, nil when it does not exist.
func GetTvShow(ctx context.Context, db orm.DB, id int) (*TvShow, error) {
	t := new(TvShow)
	err := db.Model(t).
		Context(ctx).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch tvshow")
	}
	return t, nil
}

// GetTvShowEpisodes returns a show's known episodes.
func GetTvShowEpisodes(ctx context.Context, db orm.DB, tvShowID int) ([]*Episode, error) {
	var episodes []*Episode
	err := db.Model(&episodes).
		Context(ctx).
		Where("tvshow_id = ?", tvShowID).
		Order("series_full ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch tvshow episodes")
	}
	return episodes, nil
}

// UpsertEpisode stores an episode, keeping the first row on the
// (tvshow_id, series_full) uniqueness.
func UpsertEpisode(ctx context.Context, db orm.DB, e *Episode) error {
	_, err := db.Model(e).
		Context(ctx).
		OnConflict("(tvshow_id, series_full) DO NOTHING").
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to upsert episode")
	}
	return nil
}
