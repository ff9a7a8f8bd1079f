package models

// FridgeStatus is the full inventory view served to the dashboard and
// embedded into vision-model prompts so placement decisions see current
// occupancy.
type FridgeStatus struct {
	Inventory         []DisplayItem              `json:"inventory"`
	TotalItems        int                        `json:"total_items"`
	TemperatureLevels map[int]int                `json:"temperature_levels"`
	AvailableSections map[string]map[string]bool `json:"available_sections"`
	Stats             InventoryStats             `json:"stats"`
}
