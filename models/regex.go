package models

import (
	"context"

	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Regex is one matching rule applied while grouping parts into binaries
// and naming releases. Rules run in ordinal order; disabled rules are
// skipped. GroupName is a pattern itself and is matched in code, not
// joined against.
type Regex struct {
	tableName struct{} `pg:"regexes,alias:regex"`

	ID          int    `pg:"id,pk"`
	Regex       string `pg:"regex"`
	Description string `pg:"description"`
	Status      bool   `pg:"status,default:true"`
	Ordinal     int    `pg:"ordinal,use_zero"`
	GroupName   string `pg:"group_name"`
}

// Blacklist is a rejection rule applied to a single message field before
// matching; the default target field is the subject line.
type Blacklist struct {
	tableName struct{} `pg:"blacklists,alias:blacklist"`

	ID          int    `pg:"id,pk"`
	Description string `pg:"description"`
	GroupName   string `pg:"group_name"`
	Field       string `pg:"field,notnull,default:'subject'"`
	Regex       string `pg:"regex"`
	Status      bool   `pg:"status,use_zero"`
}

// GetEnabledRegexes returns the enabled matching rules in application
// order.
func GetEnabledRegexes(ctx context.Context, db orm.DB) ([]*Regex, error) {
	var regexes []*Regex
	err := db.Model(&regexes).
		Context(ctx).
		Where("status = true").
		Order("ordinal ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch enabled regexes")
	}
	return regexes, nil
}

// GetEnabledBlacklists returns the enabled rejection rules.
func GetEnabledBlacklists(ctx context.Context, db orm.DB) ([]*Blacklist, error) {
	var blacklists []*Blacklist
	err := db.Model(&blacklists).
		Context(ctx).
		Where("status = true").
		Order("id ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch enabled blacklists")
	}
	return blacklists, nil
}
