package models

import (
	"context"

	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// File is one entry of a release's archive listing, removed together with
// the release.
type File struct {
	tableName struct{} `pg:"files,alias:file"`

	ID        int    `pg:"id,pk"`
	Name      string `pg:"name"`
	Size      int64  `pg:"size,use_zero"`
	ReleaseID int    `pg:"release_id"`
}

// GetReleaseFiles returns a release's file listing.
func GetReleaseFiles(ctx context.Context, db orm.DB, releaseID int) ([]*File, error) {
	var files []*File
	err := db.Model(&files).
		Context(ctx).
		Where("release_id = ?", releaseID).
		Order("name ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch release files")
	}
	return files, nil
}

// InsertFiles stores a release's file listing.
func InsertFiles(ctx context.Context, db orm.DB, files []*File) error {
	if len(files) == 0 {
		return nil
	}
	_, err := db.Model(&files).
		Context(ctx).
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to insert release files")
	}
	return nil
}
