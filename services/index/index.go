package index

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/bigblue/pynab/models"
	"github.com/bigblue/pynab/services/scan"
	"github.com/bigblue/pynab/services/session"

	log "github.com/sirupsen/logrus"
)

const (
	windowSizeFlag = "scan-window-size"
	orphanAgeFlag  = "orphan-age"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.IntFlag{
			Name:   windowSizeFlag,
			Usage:  "rows per scan window",
			Value:  50000,
			EnvVar: "SCAN_WINDOW_SIZE",
		},
		cli.DurationFlag{
			Name:   orphanAgeFlag,
			Usage:  "age after which orphaned parts are removed",
			Value:  72 * time.Hour,
			EnvVar: "ORPHAN_AGE",
		},
	)
}

// Index walks the segment/part/binary tables in bounded windows, so full
// passes stay tractable at hundreds of millions of rows.
type Index struct {
	pg         *cs.PG
	windowSize int
	orphanAge  time.Duration
}

func New(c *cli.Context, pg *cs.PG) *Index {
	return &Index{
		pg:         pg,
		windowSize: c.Int(windowSizeFlag),
		orphanAge:  c.Duration(orphanAgeFlag),
	}
}

// ScanReport sums up one full windowed pass over a table.
type ScanReport struct {
	Rows    int64
	Windows int
	Bytes   int64
}

// ScanSegments walks the segments table, optionally restricted to one
// group, counting rows and bytes.
func (s *Index) ScanSegments(ctx context.Context, group string) (*ScanReport, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("database connection not available")
	}
	base := db.Model((*models.Segment)(nil))
	if group != "" {
		base = base.
			Join("JOIN parts AS part").
			JoinOn("part.id = segment.part_id").
			Where("part.group_name = ?", group)
	}
	report := &ScanReport{}
	err := scan.WindowedQuery(ctx, db, base, "segment.id", s.windowSize, func(q *orm.Query) error {
		report.Windows++
		return q.ForEach(func(seg *models.Segment) error {
			report.Rows++
			report.Bytes += seg.Size
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan segments")
	}
	return report, nil
}

// ScanParts walks the parts table, optionally restricted to one group,
// counting rows and declared segment totals.
func (s *Index) ScanParts(ctx context.Context, group string) (*ScanReport, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("database connection not available")
	}
	base := db.Model((*models.Part)(nil))
	if group != "" {
		base = base.Where("part.group_name = ?", group)
	}
	report := &ScanReport{}
	err := scan.WindowedQuery(ctx, db, base, "part.id", s.windowSize, func(q *orm.Query) error {
		report.Windows++
		return q.ForEach(func(p *models.Part) error {
			report.Rows++
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan parts")
	}
	return report, nil
}

// ScanBinaries walks the binaries table, optionally restricted to one
// group.
func (s *Index) ScanBinaries(ctx context.Context, group string) (*ScanReport, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("database connection not available")
	}
	base := db.Model((*models.Binary)(nil))
	if group != "" {
		base = base.Where("binary.group_name = ?", group)
	}
	report := &ScanReport{}
	err := scan.WindowedQuery(ctx, db, base, "binary.id", s.windowSize, func(q *orm.Query) error {
		report.Windows++
		return q.ForEach(func(b *models.Binary) error {
			report.Rows++
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan binaries")
	}
	return report, nil
}

// CleanupOrphans removes parts that lost their binary longer ago than the
// configured age, together with their segments. Each window's deletions
// run in their own transaction, so an interrupted run keeps everything it
// already removed.
func (s *Index) CleanupOrphans(ctx context.Context) (int, error) {
	db := s.pg.Get()
	if db == nil {
		return 0, errors.New("database connection not available")
	}
	cutoff := time.Now().Add(-s.orphanAge)
	base := db.Model((*models.Part)(nil)).
		Where("part.binary_id IS NULL").
		Where("part.posted < ?", cutoff)
	var deleted int
	err := scan.WindowedQuery(ctx, db, base, "part.id", s.windowSize, func(q *orm.Query) error {
		var ids []int64
		err := q.ForEach(func(p *models.Part) error {
			ids = append(ids, p.ID)
			return nil
		})
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return session.With(ctx, db, func(tx *pg.Tx) error {
			n, err := models.DeletePartsByID(ctx, tx, ids)
			if err != nil {
				return err
			}
			deleted += n
			log.WithField("parts", n).Debug("removed orphaned parts window")
			return nil
		})
	})
	if err != nil {
		return deleted, errors.Wrap(err, "failed to clean up orphaned parts")
	}
	return deleted, nil
}
