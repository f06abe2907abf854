package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Part is one posted article/file-chunk, an aggregation of Segments.
// BinaryID stays nil until the matcher assigns the part to a binary, and
// is cleared again when that binary is torn down for rematching.
type Part struct {
	tableName struct{} `pg:"parts,alias:part"`

	ID            int64     `pg:"id,pk"`
	Hash          int64     `pg:"hash,use_zero"`
	Subject       string    `pg:"subject"`
	TotalSegments int       `pg:"total_segments,use_zero"`
	Posted        time.Time `pg:"posted"`
	PostedBy      string    `pg:"posted_by"`
	Xref          string    `pg:"xref"`
	GroupName     string    `pg:"group_name"`
	BinaryID      *int      `pg:"binary_id"`
}

// GetBinaryParts returns the binary's parts ordered by subject, the
// natural posting order used for reassembly.
func GetBinaryParts(ctx context.Context, db orm.DB, binaryID int) ([]*Part, error) {
	var parts []*Part
	err := db.Model(&parts).
		Context(ctx).
		Where("binary_id = ?", binaryID).
		Order("subject ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch binary parts")
	}
	return parts, nil
}

// AssignPartsToBinary points the given parts at a binary.
func AssignPartsToBinary(ctx context.Context, db orm.DB, binaryID int, partIDs []int64) error {
	if len(partIDs) == 0 {
		return nil
	}
	_, err := db.Model((*Part)(nil)).
		Context(ctx).
		Set("binary_id = ?", binaryID).
		Where("id IN (?)", pg.In(partIDs)).
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to assign parts to binary")
	}
	return nil
}

// DeletePart removes a part together with its segments. Run it inside a
// session scope so the two statements land or fail together.
func DeletePart(ctx context.Context, db orm.DB, id int64) error {
	_, err := DeletePartsByID(ctx, db, []int64{id})
	return err
}

// DeletePartsByID removes the given parts and their segments, segments
// first. Returns the number of parts removed.
func DeletePartsByID(ctx context.Context, db orm.DB, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	_, err := db.Model((*Segment)(nil)).
		Context(ctx).
		Where("part_id IN (?)", pg.In(ids)).
		Delete()
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete segments")
	}
	res, err := db.Model((*Part)(nil)).
		Context(ctx).
		Where("id IN (?)", pg.In(ids)).
		Delete()
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete parts")
	}
	return res.RowsAffected(), nil
}
