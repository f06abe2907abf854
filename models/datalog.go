package models

import (
	"context"

	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// DataLog is a free-form operational journal entry.
type DataLog struct {
	tableName struct{} `pg:"datalogs,alias:datalog"`

	ID          int    `pg:"id,pk"`
	Description string `pg:"description"`
}

// LogData appends a journal entry.
func LogData(ctx context.Context, db orm.DB, description string) error {
	_, err := db.Model(&DataLog{Description: description}).
		Context(ctx).
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to append datalog entry")
	}
	return nil
}
