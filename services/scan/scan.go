package scan

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

// Window is one contiguous slice of an ordered column's value domain.
// Start is inclusive, End exclusive; a nil End marks the final window,
// which is unbounded above.
type Window struct {
	Start int64
	End   *int64
}

// Apply narrows q to the rows whose column value falls inside the window.
// The column name is a trusted identifier supplied by the caller, never
// user input.
func (w Window) Apply(q *orm.Query, column string) *orm.Query {
	q = q.Where("? >= ?", pg.Safe(column), w.Start)
	if w.End != nil {
		q = q.Where("? < ?", pg.Safe(column), *w.End)
	}
	return q
}

// Contains reports whether v falls inside the window.
func (w Window) Contains(v int64) bool {
	if v < w.Start {
		return false
	}
	return w.End == nil || v < *w.End
}

// ColumnWindows splits the current value domain of an ordered, indexed
// column into windows of at most windowsize distinct values each. It makes
// a single ranking pass over the distinct values, keeping every
// windowsize-th one as a window boundary, so only column values travel
// over the wire, never full rows. The base query's filters are honored, so
// windows can be computed for a subset of the table.
//
// The boundaries are a snapshot: rows inserted after the pass may or may
// not be visited by queries built from these windows, and the last window
// never extends past the largest value seen. With windowsize <= 1 every
// distinct value becomes its own boundary. An empty row source yields no
// windows at all.
func ColumnWindows(ctx context.Context, db orm.DB, base *orm.Query, column string, windowsize int) ([]Window, error) {
	values := base.Clone().
		ColumnExpr("DISTINCT ? AS value", pg.Safe(column))
	ranked := db.Model().
		ColumnExpr("v.value").
		ColumnExpr("row_number() OVER (ORDER BY v.value) AS rownum").
		TableExpr("(?) AS v", values)
	q := db.Model().
		ColumnExpr("array_agg(r.value ORDER BY r.rownum)").
		TableExpr("(?) AS r", ranked)
	if windowsize > 1 {
		q = q.Where("r.rownum % ? = 1", windowsize)
	}
	var bounds []int64
	if err := q.Context(ctx).Select(pg.Array(&bounds)); err != nil {
		return nil, errors.Wrapf(err, "failed to compute windows over %s", column)
	}
	return windowsFromBounds(bounds), nil
}

// windowsFromBounds pairs consecutive boundaries into half-open windows.
// The last boundary opens the unbounded final window.
func windowsFromBounds(bounds []int64) []Window {
	windows := make([]Window, 0, len(bounds))
	for i, b := range bounds {
		w := Window{Start: b}
		if i+1 < len(bounds) {
			end := bounds[i+1]
			w.End = &end
		}
		windows = append(windows, w)
	}
	return windows
}

// WindowedQuery executes base as a series of bounded range queries, one
// per window, and hands each window-scoped query to fn in ascending column
// order. Every per-window query re-applies the base query's filters plus
// the window's range predicate and orders by the column ascending, so the
// storage engine walks the column's index directly instead of skipping
// rows the way OFFSET pagination would. Memory and latency per window stay
// roughly constant regardless of total table size.
//
// The traversal is lazy and forward-only: fn pulls one window at a time
// and an error from either the boundary pass or fn stops the traversal
// immediately, leaving already-delivered windows with the caller.
func WindowedQuery(ctx context.Context, db orm.DB, base *orm.Query, column string, windowsize int, fn func(q *orm.Query) error) error {
	windows, err := ColumnWindows(ctx, db, base, column, windowsize)
	if err != nil {
		return err
	}
	for _, w := range windows {
		q := w.Apply(base.Clone(), column).
			OrderExpr("? ASC", pg.Safe(column)).
			Context(ctx)
		if err := fn(q); err != nil {
			return err
		}
	}
	return nil
}
