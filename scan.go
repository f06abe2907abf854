package main

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"
	services "github.com/webtor-io/common-services"

	"github.com/bigblue/pynab/services/index"

	log "github.com/sirupsen/logrus"
)

func makeScanCMD() cli.Command {
	scanCmd := cli.Command{
		Name:    "scan",
		Aliases: []string{"s"},
		Usage:   "Walks large index tables in bounded windows",
	}
	configureScan(&scanCmd)
	return scanCmd
}

func configureScan(c *cli.Command) {
	segmentsCmd := cli.Command{
		Name:  "segments",
		Usage: "Scans the segments table",
		Action: func(c *cli.Context) error {
			return scanTable(c, "segments")
		},
	}
	partsCmd := cli.Command{
		Name:  "parts",
		Usage: "Scans the parts table",
		Action: func(c *cli.Context) error {
			return scanTable(c, "parts")
		},
	}
	binariesCmd := cli.Command{
		Name:  "binaries",
		Usage: "Scans the binaries table",
		Action: func(c *cli.Context) error {
			return scanTable(c, "binaries")
		},
	}
	c.Subcommands = []cli.Command{segmentsCmd, partsCmd, binariesCmd}
	for k := range c.Subcommands {
		configureSubScan(&c.Subcommands[k])
	}
}

func configureSubScan(c *cli.Command) {
	c.Flags = append(c.Flags,
		cli.StringFlag{
			Name:  "group",
			Usage: "restrict the scan to one newsgroup",
		},
	)
	c.Flags = services.RegisterPGFlags(c.Flags)
	c.Flags = index.RegisterFlags(c.Flags)
}

func scanTable(c *cli.Context, table string) error {
	// Setting DB
	pg := services.NewPG(c)
	defer pg.Close()

	// Setting Index
	idx := index.New(c, pg)

	ctx := context.Background()
	group := c.String("group")

	var (
		report *index.ScanReport
		err    error
	)
	switch table {
	case "segments":
		report, err = idx.ScanSegments(ctx, group)
	case "parts":
		report, err = idx.ScanParts(ctx, group)
	case "binaries":
		report, err = idx.ScanBinaries(ctx, group)
	}
	if err != nil {
		return err
	}

	fields := log.Fields{
		"table":   table,
		"rows":    humanize.Comma(report.Rows),
		"windows": report.Windows,
	}
	if report.Bytes > 0 {
		fields["size"] = humanize.Bytes(uint64(report.Bytes))
	}
	log.WithFields(fields).Info("scan completed")
	return nil
}
