package main

import (
	"github.com/urfave/cli"
)

func configure(app *cli.App) {
	scanCMD := makeScanCMD()
	cleanupCMD := makeCleanupCMD()
	migrationCMD := makePGMigrationCMD()
	app.Commands = []cli.Command{scanCMD, cleanupCMD, migrationCMD}
}
