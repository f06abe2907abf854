package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

type MetaBlackStatus string

const (
	// MetaBlackAttempted records a provisional failure; the slot may be
	// retried later.
	MetaBlackAttempted MetaBlackStatus = "ATTEMPTED"
	// MetaBlackImpossible records a permanent failure; the slot must never
	// be retried while the row exists.
	MetaBlackImpossible MetaBlackStatus = "IMPOSSIBLE"
)

// Blocks reports whether a negative-cache entry with this status forbids
// further attempts on its slot.
func (s MetaBlackStatus) Blocks() bool {
	return s == MetaBlackImpossible
}

// MetaBlack is a negative cache entry: it records that an enrichment
// attempt for one release slot failed, so the slot is not retried forever.
type MetaBlack struct {
	tableName struct{} `pg:"metablack,alias:metablack"`

	ID     int             `pg:"id,pk"`
	Status MetaBlackStatus `pg:"status"`
	Time   time.Time       `pg:"time,default:now()"`
}

// EnrichKind names one of the independent enrichment slots on a release.
// Failure in one slot never blocks the others.
type EnrichKind string

const (
	EnrichTvShow EnrichKind = "tvshow"
	EnrichMovie  EnrichKind = "movie"
	EnrichNFO    EnrichKind = "nfo"
	EnrichSFV    EnrichKind = "sfv"
	EnrichRar    EnrichKind = "rar"
)

// Valid reports whether k names a known enrichment slot.
func (k EnrichKind) Valid() bool {
	switch k {
	case EnrichTvShow, EnrichMovie, EnrichNFO, EnrichSFV, EnrichRar:
		return true
	}
	return false
}

// MetaBlackColumn returns the release column holding the slot's negative
// cache link.
func (k EnrichKind) MetaBlackColumn() string {
	return string(k) + "_metablack_id"
}

// slotColumn returns the release column populated by a successful
// enrichment of this kind. The rar slot has no id column of its own: its
// result is the release's file listing.
func (k EnrichKind) slotColumn() string {
	switch k {
	case EnrichTvShow:
		return "tvshow_id"
	case EnrichMovie:
		return "movie_id"
	case EnrichNFO:
		return "nfo_id"
	case EnrichSFV:
		return "sfv_id"
	}
	return ""
}

// BlackoutRelease records a failed enrichment attempt for one slot of a
// release: it creates the MetaBlack row and links the slot to it. Run it
// inside a session scope.
func BlackoutRelease(ctx context.Context, db orm.DB, releaseID int, kind EnrichKind, status MetaBlackStatus) (*MetaBlack, error) {
	if !kind.Valid() {
		return nil, errors.Errorf("unknown enrichment kind %q", kind)
	}
	mb := &MetaBlack{
		Status: status,
		Time:   time.Now(),
	}
	_, err := db.Model(mb).
		Context(ctx).
		Insert()
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert metablack")
	}
	_, err = db.Model((*Release)(nil)).
		Context(ctx).
		Set("? = ?", pg.Safe(kind.MetaBlackColumn()), mb.ID).
		Where("id = ?", releaseID).
		Update()
	if err != nil {
		return nil, errors.Wrap(err, "failed to link metablack to release")
	}
	return mb, nil
}

// DeleteMetaBlack clears the referencing release slot and removes the row,
// making the slot eligible for another attempt. Run it inside a session
// scope.
func DeleteMetaBlack(ctx context.Context, db orm.DB, id int, kind EnrichKind) error {
	if !kind.Valid() {
		return errors.Errorf("unknown enrichment kind %q", kind)
	}
	_, err := db.Model((*Release)(nil)).
		Context(ctx).
		Set("? = NULL", pg.Safe(kind.MetaBlackColumn())).
		Where("? = ?", pg.Safe(kind.MetaBlackColumn()), id).
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to unlink metablack from release")
	}
	_, err = db.Model((*MetaBlack)(nil)).
		Context(ctx).
		Where("id = ?", id).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete metablack")
	}
	return nil
}
