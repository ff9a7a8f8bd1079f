package models

// RecommendationType identifies the bucket a recommendation belongs to.
type RecommendationType string

const (
	RecommendExpiringSoon RecommendationType = "expiring_soon"
	RecommendFresh        RecommendationType = "fresh"
	RecommendLongTerm     RecommendationType = "long_term"
	RecommendGeneral      RecommendationType = "general"
)

// Recommendation is a single bucketed suggestion shown on the dashboard.
type Recommendation struct {
	Type    RecommendationType `json:"type"`
	Title   string             `json:"title"`
	Items   []DisplayItem      `json:"items"`
	Message string             `json:"message"`
	Action  string             `json:"action"`
}
