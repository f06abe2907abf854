package models

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// NZB holds a release's generated NZB document.
type NZB struct {
	tableName struct{} `pg:"nzbs,alias:nzb"`

	ID   int    `pg:"id,pk"`
	Data []byte `pg:"data"`
}

// NFO holds a release's NFO text as posted.
type NFO struct {
	tableName struct{} `pg:"nfos,alias:nfo"`

	ID   int    `pg:"id,pk"`
	Data []byte `pg:"data"`
}

// SFV holds a release's SFV checksum file as posted.
type SFV struct {
	tableName struct{} `pg:"sfvs,alias:sfv"`

	ID   int    `pg:"id,pk"`
	Data []byte `pg:"data"`
}

// InsertNZB stores an NZB payload and returns its row.
func InsertNZB(ctx context.Context, db orm.DB, data []byte) (*NZB, error) {
	n := &NZB{Data: data}
	_, err := db.Model(n).
		Context(ctx).
		Insert()
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert nzb")
	}
	return n, nil
}

// GetNZB returns an NZB payload by id, nil when it does not exist.
func GetNZB(ctx context.Context, db orm.DB, id int) (*NZB, error) {
	n := new(NZB)
	err := db.Model(n).
		Context(ctx).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch nzb")
	}
	return n, nil
}

// InsertNFO stores an NFO payload and returns its row.
func InsertNFO(ctx context.Context, db orm.DB, data []byte) (*NFO, error) {
	n := &NFO{Data: data}
	_, err := db.Model(n).
		Context(ctx).
		Insert()
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert nfo")
	}
	return n, nil
}

// GetNFO returns an NFO payload by id, nil when it does not exist.
func GetNFO(ctx context.Context, db orm.DB, id int) (*NFO, error) {
	n := new(NFO)
	err := db.Model(n).
		Context(ctx).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch nfo")
	}
	return n, nil
}

// InsertSFV stores an SFV payload and returns its row.
func InsertSFV(ctx context.Context, db orm.DB, data []byte) (*SFV, error) {
	s := &SFV{Data: data}
	_, err := db.Model(s).
		Context(ctx).
		Insert()
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert sfv")
	}
	return s, nil
}

// GetSFV returns an SFV payload by id, nil when it does not exist.
func GetSFV(ctx context.Context, db orm.DB, id int) (*SFV, error) {
	s := new(SFV)
	err := db.Model(s).
		Context(ctx).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch sfv")
	}
	return s, nil
}
