package migrations

import (
	"github.com/go-pg/migrations/v8"
)

// IncreaseXrefSize registers the migration widening the cross-reference
// columns on parts and binaries from 256 to 1024 characters. The width
// increase needs no data transformation. The down migration narrows the
// columns back and fails with a length constraint violation if existing
// data no longer fits; truncation is an operator decision, never done
// here.
func IncreaseXrefSize(col *migrations.Collection) {
	col.MustRegisterTx(func(db migrations.DB) error {
		return execAll(db, []string{
			`ALTER TABLE parts ALTER COLUMN xref TYPE varchar(1024)`,
			`ALTER TABLE binaries ALTER COLUMN xref TYPE varchar(1024)`,
		})
	}, func(db migrations.DB) error {
		return execAll(db, []string{
			`ALTER TABLE binaries ALTER COLUMN xref TYPE varchar(256)`,
			`ALTER TABLE parts ALTER COLUMN xref TYPE varchar(256)`,
		})
	})
}
