package scan

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boundsOf replicates the partitioner's ranking rule in memory: sort the
// distinct values ascending and keep every windowsize-th one, starting
// from the first.
func boundsOf(values []int64, windowsize int) []int64 {
	seen := map[int64]bool{}
	var distinct []int64
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })
	if windowsize <= 1 {
		return distinct
	}
	var bounds []int64
	for i, v := range distinct {
		if i%windowsize == 0 {
			bounds = append(bounds, v)
		}
	}
	return bounds
}

func TestWindowsFromBounds(t *testing.T) {
	t.Run("pairs consecutive boundaries", func(t *testing.T) {
		windows := windowsFromBounds([]int64{1, 4, 7})
		require.Len(t, windows, 3)

		assert.EqualValues(t, 1, windows[0].Start)
		require.NotNil(t, windows[0].End)
		assert.EqualValues(t, 4, *windows[0].End)

		assert.EqualValues(t, 4, windows[1].Start)
		require.NotNil(t, windows[1].End)
		assert.EqualValues(t, 7, *windows[1].End)

		assert.EqualValues(t, 7, windows[2].Start)
		assert.Nil(t, windows[2].End, "final window must be unbounded above")
	})

	t.Run("empty bounds yield no windows", func(t *testing.T) {
		assert.Empty(t, windowsFromBounds(nil))
	})

	t.Run("single boundary yields one unbounded window", func(t *testing.T) {
		windows := windowsFromBounds([]int64{42})
		require.Len(t, windows, 1)
		assert.EqualValues(t, 42, windows[0].Start)
		assert.Nil(t, windows[0].End)
	})

	t.Run("boundaries are strictly increasing", func(t *testing.T) {
		bounds := boundsOf([]int64{9, 9, 3, 3, 5, 1, 7}, 2)
		for i := 1; i < len(bounds); i++ {
			assert.Less(t, bounds[i-1], bounds[i])
		}
	})
}

func TestWindowContains(t *testing.T) {
	end := int64(7)
	bounded := Window{Start: 4, End: &end}

	assert.False(t, bounded.Contains(3))
	assert.True(t, bounded.Contains(4), "start is inclusive")
	assert.True(t, bounded.Contains(6))
	assert.False(t, bounded.Contains(7), "end is exclusive")

	final := Window{Start: 7}
	assert.True(t, final.Contains(7))
	assert.True(t, final.Contains(1<<40))
	assert.False(t, final.Contains(6))
}

func TestWindowedTraversal(t *testing.T) {
	// Drives the window arithmetic against an in-memory row set: the rows
	// collected window by window must equal the unbounded ordered result.
	traverse := func(values []int64, windowsize int) []int64 {
		windows := windowsFromBounds(boundsOf(values, windowsize))
		var out []int64
		for _, w := range windows {
			var rows []int64
			for _, v := range values {
				if w.Contains(v) {
					rows = append(rows, v)
				}
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i] < rows[j] })
			out = append(out, rows...)
		}
		return out
	}

	t.Run("seven rows with windowsize three", func(t *testing.T) {
		values := []int64{1, 2, 3, 4, 5, 6, 7}

		bounds := boundsOf(values, 3)
		assert.Equal(t, []int64{1, 4, 7}, bounds)

		assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, traverse(values, 3))
	})

	t.Run("every row visited exactly once", func(t *testing.T) {
		values := []int64{12, 5, 99, 5, 31, 12, 7, 64, 2}
		for _, windowsize := range []int{1, 2, 3, 5, 100} {
			got := traverse(values, windowsize)
			want := append([]int64(nil), values...)
			sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
			assert.Equal(t, want, got, "windowsize %d", windowsize)
		}
	})

	t.Run("windowsize one gives one window per distinct value", func(t *testing.T) {
		values := []int64{3, 1, 4, 1, 5, 9, 2, 6, 5}
		windows := windowsFromBounds(boundsOf(values, 1))
		assert.Len(t, windows, 7)
	})

	t.Run("empty row set yields nothing", func(t *testing.T) {
		assert.Empty(t, windowsFromBounds(boundsOf(nil, 3)))
		assert.Empty(t, traverse(nil, 3))
	})
}
