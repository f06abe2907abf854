package models

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Miss records a message number within a group that failed to retrieve,
// so the fetcher can retry it a bounded number of times.
type Miss struct {
	tableName struct{} `pg:"misses,alias:miss"`

	ID        int    `pg:"id,pk"`
	GroupName string `pg:"group_name"`
	Message   int64  `pg:"message,notnull"`
	Attempts  int    `pg:"attempts,use_zero"`
}

// RecordMisses stores freshly failed message numbers for a group.
func RecordMisses(ctx context.Context, db orm.DB, groupName string, messages []int64) error {
	if len(messages) == 0 {
		return nil
	}
	misses := make([]*Miss, 0, len(messages))
	for _, m := range messages {
		misses = append(misses, &Miss{
			GroupName: groupName,
			Message:   m,
		})
	}
	_, err := db.Model(&misses).
		Context(ctx).
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to record misses")
	}
	return nil
}

// GetRetryableMisses returns misses for a group that have not yet
// exhausted their retry budget.
func GetRetryableMisses(ctx context.Context, db orm.DB, groupName string, maxAttempts int) ([]*Miss, error) {
	var misses []*Miss
	err := db.Model(&misses).
		Context(ctx).
		Where("group_name = ?", groupName).
		Where("attempts < ?", maxAttempts).
		Order("message ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch retryable misses")
	}
	return misses, nil
}

// IncrementMissAttempts bumps the retry counter after another failed
// fetch.
func IncrementMissAttempts(ctx context.Context, db orm.DB, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := db.Model((*Miss)(nil)).
		Context(ctx).
		Set("attempts = attempts + 1").
		Where("id IN (?)", pg.In(ids)).
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to increment miss attempts")
	}
	return nil
}

// DeleteMisses drops misses once their messages finally arrived.
func DeleteMisses(ctx context.Context, db orm.DB, groupName string, messages []int64) (int, error) {
	if len(messages) == 0 {
		return 0, nil
	}
	res, err := db.Model((*Miss)(nil)).
		Context(ctx).
		Where("group_name = ?", groupName).
		Where("message IN (?)", pg.In(messages)).
		Delete()
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete misses")
	}
	return res.RowsAffected(), nil
}
