package models

import "time"

// InventoryItem represents a single item stored in the fridge. Fields are
// fixed at placement time; an item is never mutated, only removed when it is
// retrieved.
type InventoryItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Level         int       `json:"level"`
	Section       int       `json:"section"`
	OptimalTemp   int       `json:"optimal_temp"`
	ShelfLifeDays int       `json:"shelf_life_days"`
	AddedAt       time.Time `json:"added_at"`
	ExpiryAt      time.Time `json:"expiry_at"`
	Reasoning     string    `json:"reasoning"`
}

// DisplayItem is the read-only view of a stored item with derived expiry
// state, as served to the dashboard and fed to the recommendation engine.
type DisplayItem struct {
	ItemID        string `json:"item_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Level         int    `json:"level"`
	Section       int    `json:"section"`
	OptimalTemp   int    `json:"optimal_temp"`
	ShelfLifeDays int    `json:"shelf_life_days"`
	DaysRemaining int    `json:"days_remaining"`
	IsExpired     bool   `json:"is_expired"`
	AddedAt       time.Time `json:"added_at"`
}

// LongTerm reports whether the item never expires.
func (d DisplayItem) LongTerm() bool {
	return d.ShelfLifeDays == LongTermSentinel
}

// InventoryStats summarizes the fridge contents per expiry bucket.
type InventoryStats struct {
	TotalItems    int `json:"total_items"`
	ExpiredItems  int `json:"expired_items"`
	ExpiringSoon  int `json:"expiring_soon"`
	FreshItems    int `json:"fresh_items"`
	LongTermItems int `json:"long_term_items"`
}
