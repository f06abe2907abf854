package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestReleaseMetaBlackIDs(t *testing.T) {
	t.Run("collects only linked slots", func(t *testing.T) {
		r := &Release{
			MovieMetaBlackID: intPtr(11),
			SFVMetaBlackID:   intPtr(12),
		}
		assert.ElementsMatch(t, []int{11, 12}, r.metaBlackIDs())
	})

	t.Run("no links", func(t *testing.T) {
		assert.Empty(t, (&Release{}).metaBlackIDs())
	})

	t.Run("all five slots", func(t *testing.T) {
		r := &Release{
			TvShowMetaBlackID: intPtr(1),
			MovieMetaBlackID:  intPtr(2),
			NFOMetaBlackID:    intPtr(3),
			SFVMetaBlackID:    intPtr(4),
			RarMetaBlackID:    intPtr(5),
		}
		assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, r.metaBlackIDs())
	})
}
