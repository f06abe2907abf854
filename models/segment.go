package models

import (
	"context"

	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Segment is one physical article fragment. Segments only exist as part of
// a Part and are removed with it.
type Segment struct {
	tableName struct{} `pg:"segments,alias:segment"`

	ID        int64  `pg:"id,pk"`
	Number    int    `pg:"segment,use_zero"`
	Size      int64  `pg:"size,use_zero"`
	MessageID string `pg:"message_id"`
	PartID    int64  `pg:"part_id"`
}

// GetPartSegments returns the part's segments in posting order, the order
// required for reassembly.
func GetPartSegments(ctx context.Context, db orm.DB, partID int64) ([]*Segment, error) {
	var segments []*Segment
	err := db.Model(&segments).
		Context(ctx).
		Where("part_id = ?", partID).
		Order("segment ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch part segments")
	}
	return segments, nil
}

// InsertSegments bulk-inserts freshly collected segments.
func InsertSegments(ctx context.Context, db orm.DB, segments []*Segment) error {
	if len(segments) == 0 {
		return nil
	}
	_, err := db.Model(&segments).
		Context(ctx).
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to insert segments")
	}
	return nil
}
