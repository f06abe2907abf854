package models

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Group is a source newsgroup. First and Last track the known article
// number range and bound scan windows per group.
type Group struct {
	tableName struct{} `pg:"groups,alias:grp"`

	ID     int    `pg:"id,pk"`
	Active bool   `pg:"active,use_zero"`
	First  int64  `pg:"first,use_zero"`
	Last   int64  `pg:"last,use_zero"`
	Name   string `pg:"name"`
}

// GetActiveGroups returns the groups currently being indexed.
func GetActiveGroups(ctx context.Context, db orm.DB) ([]*Group, error) {
	var groups []*Group
	err := db.Model(&groups).
		Context(ctx).
		Where("active = true").
		Order("name ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch active groups")
	}
	return groups, nil
}

// GetGroupByName returns a group by name, nil when it is unknown.
func GetGroupByName(ctx context.Context, db orm.DB, name string) (*Group, error) {
	g := new(Group)
	err := db.Model(g).
		Context(ctx).
		Where("name = ?", name).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch group")
	}
	return g, nil
}

// UpdateGroupRange records the newly observed article number range after a
// fetch pass.
func UpdateGroupRange(ctx context.Context, db orm.DB, id int, first, last int64) error {
	_, err := db.Model((*Group)(nil)).
		Context(ctx).
		Set("first = ?", first).
		Set("last = ?", last).
		Where("id = ?", id).
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to update group range")
	}
	return nil
}
