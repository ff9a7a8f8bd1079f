package fridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartfridge/internal/models"
)

func displayItem(id string, days int, expired, longTerm bool) models.DisplayItem {
	shelf := 7
	if longTerm {
		shelf = models.LongTermSentinel
	}
	return models.DisplayItem{
		ItemID:        id,
		Name:          id,
		ShelfLifeDays: shelf,
		DaysRemaining: days,
		IsExpired:     expired,
		AddedAt:       time.Now(),
	}
}

func TestSummarize_MergesExpiredIntoExpiring(t *testing.T) {
	snapshot := []models.DisplayItem{
		displayItem("old_milk", 0, true, false),
		displayItem("yogurt", 1, false, false),
		displayItem("eggs", 20, false, false),
	}

	recs := Summarize(snapshot)

	assert.Len(t, recs, 2)
	assert.Equal(t, models.RecommendExpiringSoon, recs[0].Type)
	assert.Len(t, recs[0].Items, 2)
	assert.Equal(t, models.RecommendFresh, recs[1].Type)
	assert.Len(t, recs[1].Items, 1)
}

func TestSummarize_LongTermBucket(t *testing.T) {
	snapshot := []models.DisplayItem{
		displayItem("salt", 36500, false, true),
		displayItem("eggs", 20, false, false),
	}

	recs := Summarize(snapshot)

	assert.Len(t, recs, 2)
	assert.Equal(t, models.RecommendFresh, recs[0].Type)
	assert.Equal(t, models.RecommendLongTerm, recs[1].Type)
	assert.Len(t, recs[1].Items, 1)
}

func TestSummarize_EmptyFridge(t *testing.T) {
	recs := Summarize(nil)

	assert.Len(t, recs, 1)
	assert.Equal(t, models.RecommendGeneral, recs[0].Type)
	assert.NotEmpty(t, recs[0].Message)
}
