package models

import (
	"context"
	"strings"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// User is an API consumer identified by a generated 32-character key.
type User struct {
	tableName struct{} `pg:"users,alias:usr"`

	ID     int    `pg:"id,pk"`
	APIKey string `pg:"api_key"`
	Email  string `pg:"email"`
	Grabs  int    `pg:"grabs,use_zero"`
}

// CreateUser stores a new user with a freshly generated API key.
func CreateUser(ctx context.Context, db orm.DB, email string) (*User, error) {
	u := &User{
		APIKey: strings.ReplaceAll(uuid.NewV4().String(), "-", ""),
		Email:  email,
	}
	_, err := db.Model(u).
		Context(ctx).
		Insert()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}
	return u, nil
}

// GetUserByAPIKey returns the user owning the key, nil when the key is
// unknown.
func GetUserByAPIKey(ctx context.Context, db orm.DB, apiKey string) (*User, error) {
	u := new(User)
	err := db.Model(u).
		Context(ctx).
		Where("api_key = ?", apiKey).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch user by api key")
	}
	return u, nil
}

// IncrementUserGrabs bumps the user's download counter.
func IncrementUserGrabs(ctx context.Context, db orm.DB, id int) error {
	_, err := db.Model((*User)(nil)).
		Context(ctx).
		Set("grabs = grabs + 1").
		Where("id = ?", id).
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to increment user grabs")
	}
	return nil
}
