package models

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Category classifies releases. Categories form a tree through ParentID;
// children are looked up explicitly, never loaded implicitly.
type Category struct {
	tableName struct{} `pg:"categories,alias:category"`

	ID       int    `pg:"id,pk"`
	Name     string `pg:"name"`
	ParentID *int   `pg:"parent_id"`
}

// GetCategory returns a category by id, nil when it does not exist.
func GetCategory(ctx context.Context, db orm.DB, id int) (*Category, error) {
	c := new(Category)
	err := db.Model(c).
		Context(ctx).
		Where("id = ?", id).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch category")
	}
	return c, nil
}

// GetRootCategories returns the top level of the category tree.
func GetRootCategories(ctx context.Context, db orm.DB) ([]*Category, error) {
	var categories []*Category
	err := db.Model(&categories).
		Context(ctx).
		Where("parent_id IS NULL").
		Order("id ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch root categories")
	}
	return categories, nil
}

// GetCategoryChildren returns a category's direct children via the
// parent_id index.
func GetCategoryChildren(ctx context.Context, db orm.DB, parentID int) ([]*Category, error) {
	var categories []*Category
	err := db.Model(&categories).
		Context(ctx).
		Where("parent_id = ?", parentID).
		Order("id ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch category children")
	}
	return categories, nil
}
