package main

import (
	"context"

	"github.com/urfave/cli"
	services "github.com/webtor-io/common-services"

	"github.com/bigblue/pynab/services/index"

	log "github.com/sirupsen/logrus"
)

func makeCleanupCMD() cli.Command {
	cleanupCmd := cli.Command{
		Name:    "cleanup",
		Aliases: []string{"c"},
		Usage:   "Removes dead index data",
	}
	configureCleanup(&cleanupCmd)
	return cleanupCmd
}

func configureCleanup(c *cli.Command) {
	orphansCmd := cli.Command{
		Name:  "orphans",
		Usage: "Removes parts that lost their binary, with their segments",
		Action: func(c *cli.Context) error {
			return cleanupOrphans(c)
		},
	}
	c.Subcommands = []cli.Command{orphansCmd}
	for k := range c.Subcommands {
		configureSubCleanup(&c.Subcommands[k])
	}
}

func configureSubCleanup(c *cli.Command) {
	c.Flags = services.RegisterPGFlags(c.Flags)
	c.Flags = index.RegisterFlags(c.Flags)
}

func cleanupOrphans(c *cli.Context) error {
	// Setting DB
	pg := services.NewPG(c)
	defer pg.Close()

	// Setting Index
	idx := index.New(c, pg)

	ctx := context.Background()

	log.Info("running orphaned parts cleanup")
	deleted, err := idx.CleanupOrphans(ctx)
	if err != nil {
		return err
	}
	log.WithField("parts", deleted).Info("orphaned parts cleanup completed")
	return nil
}
