package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrichKindColumns(t *testing.T) {
	t.Run("metablack columns", func(t *testing.T) {
		assert.Equal(t, "tvshow_metablack_id", EnrichTvShow.MetaBlackColumn())
		assert.Equal(t, "movie_metablack_id", EnrichMovie.MetaBlackColumn())
		assert.Equal(t, "nfo_metablack_id", EnrichNFO.MetaBlackColumn())
		assert.Equal(t, "sfv_metablack_id", EnrichSFV.MetaBlackColumn())
		assert.Equal(t, "rar_metablack_id", EnrichRar.MetaBlackColumn())
	})

	t.Run("slot columns", func(t *testing.T) {
		assert.Equal(t, "tvshow_id", EnrichTvShow.slotColumn())
		assert.Equal(t, "movie_id", EnrichMovie.slotColumn())
		assert.Equal(t, "nfo_id", EnrichNFO.slotColumn())
		assert.Equal(t, "sfv_id", EnrichSFV.slotColumn())
		assert.Empty(t, EnrichRar.slotColumn(), "rar result is the file listing, not an id column")
	})

	t.Run("slots are independent", func(t *testing.T) {
		kinds := []EnrichKind{EnrichTvShow, EnrichMovie, EnrichNFO, EnrichSFV, EnrichRar}
		seen := map[string]EnrichKind{}
		for _, k := range kinds {
			col := k.MetaBlackColumn()
			if prev, ok := seen[col]; ok {
				t.Fatalf("kinds %s and %s share column %s", prev, k, col)
			}
			seen[col] = k
		}
	})

	t.Run("validity", func(t *testing.T) {
		assert.True(t, EnrichMovie.Valid())
		assert.False(t, EnrichKind("subtitles").Valid())
	})
}

func TestMetaBlackStatusBlocks(t *testing.T) {
	assert.False(t, MetaBlackAttempted.Blocks(), "provisional failures may be retried")
	assert.True(t, MetaBlackImpossible.Blocks(), "permanent failures must never be retried")
}
