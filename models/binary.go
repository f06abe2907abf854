package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Binary is one logical file, an aggregation of Parts.
type Binary struct {
	tableName struct{} `pg:"binaries,alias:binary"`

	ID         int       `pg:"id,pk"`
	Hash       int64     `pg:"hash,use_zero"`
	Name       string    `pg:"name"`
	TotalParts int       `pg:"total_parts,use_zero"`
	Posted     time.Time `pg:"posted"`
	PostedBy   string    `pg:"posted_by"`
	Xref       string    `pg:"xref"`
	GroupName  string    `pg:"group_name"`
	RegexID    *int      `pg:"regex_id"`
}

// GetBinary returns a binary by id, nil when it does not exist.
func GetBinary(ctx context.Context, db orm.DB, id int) (*Binary, error) {
	b := new(Binary)
	err := db.Model(b).
		Context(ctx).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch binary")
	}
	return b, nil
}

// BinarySize computes the binary's total byte size: the sum of segment
// sizes across all of its parts. Computed on demand, never stored.
func BinarySize(ctx context.Context, db orm.DB, binaryID int) (int64, error) {
	var size int64
	err := db.Model((*Segment)(nil)).
		Context(ctx).
		ColumnExpr("COALESCE(SUM(segment.size), 0)").
		Join("JOIN parts AS part").
		JoinOn("part.id = segment.part_id").
		Where("part.binary_id = ?", binaryID).
		Select(&size)
	if err != nil {
		return 0, errors.Wrap(err, "failed to compute binary size")
	}
	return size, nil
}

// DeleteBinary orphans the binary's parts and removes the binary row. The
// parts survive on purpose: they go back into the matching pool. Run it
// inside a session scope.
func DeleteBinary(ctx context.Context, db orm.DB, id int) error {
	_, err := db.Model((*Part)(nil)).
		Context(ctx).
		Set("binary_id = NULL").
		Where("binary_id = ?", id).
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to orphan binary parts")
	}
	_, err = db.Model((*Binary)(nil)).
		Context(ctx).
		Where("id = ?", id).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete binary")
	}
	return nil
}
