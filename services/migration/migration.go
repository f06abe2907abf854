package migration

import (
	"github.com/go-pg/migrations/v8"
	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Run applies the collection's registered migrations. A nil db means no
// database flags were provided; the run is skipped so commands stay usable
// without storage configured.
func Run(db *pg.DB, col *migrations.Collection, a ...string) error {
	if db == nil {
		log.Info("db not initialized, skipping migration")
		return nil
	}
	if _, _, err := col.Run(db, "init"); err != nil {
		return errors.Wrap(err, "failed to init migrations table")
	}
	oldVersion, newVersion, err := col.Run(db, a...)
	if err != nil {
		return errors.Wrapf(err, "failed to migrate from version %d", oldVersion)
	}
	if newVersion != oldVersion {
		log.Infof("db migrated from version %d to %d", oldVersion, newVersion)
	} else {
		log.Infof("db migration version is %d", oldVersion)
	}
	return nil
}
