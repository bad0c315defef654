package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundleFor(t *testing.T) {
	b, ok := bundleFor(250)
	assert.True(t, ok)
	assert.Equal(t, 19.99, b.PriceEUR)
	assert.Equal(t, 25, b.BonusPoints)

	_, ok = bundleFor(123)
	assert.False(t, ok)
}

func TestPointBundles_Catalog(t *testing.T) {
	assert.Len(t, PointBundles, 4)

	bonus := map[int]int{}
	for _, b := range PointBundles {
		bonus[b.Points] = b.BonusPoints
	}
	assert.Equal(t, 0, bonus[100])
	assert.Equal(t, 25, bonus[250])
	assert.Equal(t, 75, bonus[500])
	assert.Equal(t, 200, bonus[1000])
}

func TestPerkPriorityScores(t *testing.T) {
	assert.Greater(t, perkPriorityScores["priority_listing"], perkPriorityScores["featured_profile"])
	assert.Greater(t, perkPriorityScores["featured_profile"], perkPriorityScores["boost_visibility"])
	assert.Greater(t, perkPriorityScores["boost_visibility"], perkPriorityScores["premium_badge"])
}
