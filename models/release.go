package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Passworded classifies whether a release is password-protected.
type Passworded string

const (
	PasswordedUnknown Passworded = "UNKNOWN"
	PasswordedYes     Passworded = "YES"
	PasswordedNo      Passworded = "NO"
	PasswordedMaybe   Passworded = "MAYBE"
)

// Release is a publishable unit assembled from binaries, optionally
// enriched with metadata and classified by category and matching regex.
// (name, posted) pairs are unique. Each of the four enrichment slots may
// carry a MetaBlack link recording a failed attempt; the slots are fully
// independent of each other.
type Release struct {
	tableName struct{} `pg:"releases,alias:release"`

	ID         int        `pg:"id,pk"`
	Added      time.Time  `pg:"added,default:now()"`
	Posted     time.Time  `pg:"posted"`
	Name       string     `pg:"name"`
	SearchName string     `pg:"search_name"`
	PostedBy   string     `pg:"posted_by"`
	Status     int        `pg:"status,use_zero"`
	Grabs      int        `pg:"grabs,use_zero"`
	Size       int64      `pg:"size,use_zero"`
	Passworded Passworded `pg:"passworded"`
	Unwanted   bool       `pg:"unwanted,use_zero"`

	GroupID    *int `pg:"group_id"`
	CategoryID *int `pg:"category_id"`
	RegexID    *int `pg:"regex_id"`

	TvShowID          *int    `pg:"tvshow_id"`
	EpisodeID         *int    `pg:"episode_id"`
	TvShowMetaBlackID *int    `pg:"tvshow_metablack_id"`
	MovieID           *string `pg:"movie_id"`
	MovieMetaBlackID  *int    `pg:"movie_metablack_id"`
	NZBID             *int    `pg:"nzb_id"`
	NFOID             *int    `pg:"nfo_id"`
	NFOMetaBlackID    *int    `pg:"nfo_metablack_id"`
	SFVID             *int    `pg:"sfv_id"`
	SFVMetaBlackID    *int    `pg:"sfv_metablack_id"`
	RarMetaBlackID    *int    `pg:"rar_metablack_id"`
}

// metaBlackIDs returns the ids of the MetaBlack rows the release's slots
// point at.
func (r *Release) metaBlackIDs() []int {
	var ids []int
	for _, id := range []*int{
		r.TvShowMetaBlackID,
		r.MovieMetaBlackID,
		r.NFOMetaBlackID,
		r.SFVMetaBlackID,
		r.RarMetaBlackID,
	} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}

// InsertRelease stores a new release, honoring the (name, posted)
// uniqueness: a duplicate is silently skipped and reported as false.
func InsertRelease(ctx context.Context, db orm.DB, r *Release) (bool, error) {
	if r.Passworded == "" {
		r.Passworded = PasswordedUnknown
	}
	res, err := db.Model(r).
		Context(ctx).
		OnConflict("(name, posted) DO NOTHING").
		Insert()
	if err != nil {
		return false, errors.Wrap(err, "failed to insert release")
	}
	return res.RowsAffected() > 0, nil
}

// GetRelease returns a release by id, nil when it does not exist.
func GetRelease(ctx context.Context, db orm.DB, id int) (*Release, error) {
	r := new(Release)
	err := db.Model(r).
		Context(ctx).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch release")
	}
	return r, nil
}

// ReleasesNeedingEnrichment returns releases eligible for another attempt
// at the given enrichment slot: the slot is still empty and its negative
// cache entry, if any, does not block retries. The other slots' negative
// cache entries are ignored entirely, keeping the four slots independent.
func ReleasesNeedingEnrichment(ctx context.Context, db orm.DB, kind EnrichKind, limit int) ([]*Release, error) {
	if !kind.Valid() {
		return nil, errors.Errorf("unknown enrichment kind %q", kind)
	}
	var releases []*Release
	q := db.Model(&releases).
		Context(ctx).
		Join("LEFT JOIN metablack AS mb").
		JoinOn("mb.id = release.?", pg.Safe(kind.MetaBlackColumn())).
		Where("mb.id IS NULL OR mb.status <> ?", MetaBlackImpossible).
		Order("posted DESC")
	if slot := kind.slotColumn(); slot != "" {
		q = q.Where("release.? IS NULL", pg.Safe(slot))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Select(); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch releases needing %s", kind)
	}
	return releases, nil
}

// IncrementReleaseGrabs bumps the grab counter.
func IncrementReleaseGrabs(ctx context.Context, db orm.DB, id int) error {
	_, err := db.Model((*Release)(nil)).
		Context(ctx).
		Set("grabs = grabs + 1").
		Where("id = ?", id).
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to increment release grabs")
	}
	return nil
}

// SetReleaseUnwanted flags a release so it is excluded from the public
// index without deleting its history.
func SetReleaseUnwanted(ctx context.Context, db orm.DB, id int, unwanted bool) error {
	_, err := db.Model((*Release)(nil)).
		Context(ctx).
		Set("unwanted = ?", unwanted).
		Where("id = ?", id).
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to flag release")
	}
	return nil
}

// DeleteRelease removes a release, its files and the MetaBlack rows its
// slots referenced. A MetaBlack row lives and dies with the single slot
// that points at it, so deleting the release also retires its negative
// cache. Run it inside a session scope.
func DeleteRelease(ctx context.Context, db orm.DB, id int) error {
	r := new(Release)
	err := db.Model(r).
		Context(ctx).
		Where("id = ?", id).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to fetch release for deletion")
	}
	_, err = db.Model((*File)(nil)).
		Context(ctx).
		Where("release_id = ?", id).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete release files")
	}
	_, err = db.Model((*Release)(nil)).
		Context(ctx).
		Where("id = ?", id).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete release")
	}
	if mbIDs := r.metaBlackIDs(); len(mbIDs) > 0 {
		_, err = db.Model((*MetaBlack)(nil)).
			Context(ctx).
			Where("id IN (?)", pg.In(mbIDs)).
			Delete()
		if err != nil {
			return errors.Wrap(err, "failed to delete release metablack entries")
		}
	}
	return nil
}
