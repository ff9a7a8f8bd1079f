package fridge

import (
	"fmt"

	"smartfridge/internal/models"
)

// expiringSoonDays is the remaining-days threshold below which an item counts
// as expiring soon.
const expiringSoonDays = 2

// Summarize derives bucketed recommendations from an inventory snapshot. It
// is the deterministic local fallback used whenever the model-backed
// recommender is unreachable or returns garbage, so it always succeeds.
//
// Expired items are merged into the expiring-soon bucket: both demand the
// same user action, immediate attention.
func Summarize(snapshot []models.DisplayItem) []models.Recommendation {
	var expiring, fresh, longTerm []models.DisplayItem
	for _, item := range snapshot {
		switch {
		case item.LongTerm():
			longTerm = append(longTerm, item)
		case item.IsExpired || item.DaysRemaining <= expiringSoonDays:
			expiring = append(expiring, item)
		default:
			fresh = append(fresh, item)
		}
	}

	var recs []models.Recommendation
	if len(expiring) > 0 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendExpiringSoon,
			Title:   fmt.Sprintf("Items needing attention (%d)", len(expiring)),
			Items:   expiring,
			Message: fmt.Sprintf("%d item(s) are expired or expiring within %d days.", len(expiring), expiringSoonDays),
			Action:  "Use or discard these items soon",
		})
	}
	if len(fresh) > 0 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendFresh,
			Title:   "Fresh items",
			Items:   fresh,
			Message: fmt.Sprintf("%d item(s) are fresh and safe to eat.", len(fresh)),
			Action:  "Enjoy while fresh",
		})
	}
	if len(longTerm) > 0 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendLongTerm,
			Title:   "Long-term storage",
			Items:   longTerm,
			Message: fmt.Sprintf("%d item(s) keep indefinitely.", len(longTerm)),
			Action:  "No action needed",
		})
	}
	if len(recs) == 0 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendGeneral,
			Title:   "All good",
			Items:   []models.DisplayItem{},
			Message: "Everything in the fridge is in good condition.",
			Action:  "Keep up the good storage habits",
		})
	}
	return recs
}
