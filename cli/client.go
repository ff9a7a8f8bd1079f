package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the smart fridge service
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("FRIDGE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
		BaseURL: baseURL,
	}
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}
	return true, nil
}

// DisplayItem is one stored item as served by the status endpoint
type DisplayItem struct {
	ItemID        string `json:"item_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Level         int    `json:"level"`
	Section       int    `json:"section"`
	ShelfLifeDays int    `json:"shelf_life_days"`
	DaysRemaining int    `json:"days_remaining"`
	IsExpired     bool   `json:"is_expired"`
}

// InventoryStats buckets the inventory for the dashboard header
type InventoryStats struct {
	TotalItems    int `json:"total_items"`
	FreshItems    int `json:"fresh_items"`
	ExpiringSoon  int `json:"expiring_soon"`
	ExpiredItems  int `json:"expired_items"`
	LongTermItems int `json:"long_term_items"`
}

// FridgeStatus is the full inventory view
type FridgeStatus struct {
	Inventory         []DisplayItem  `json:"inventory"`
	TotalItems        int            `json:"total_items"`
	TemperatureLevels map[string]int `json:"temperature_levels"`
	Stats             InventoryStats `json:"stats"`
}

// Recommendation is one recommendation bucket
type Recommendation struct {
	Type    string        `json:"type"`
	Title   string        `json:"title"`
	Items   []DisplayItem `json:"items"`
	Message string        `json:"message"`
	Action  string        `json:"action"`
}

// HistoryEvent is one audit trail entry
type HistoryEvent struct {
	CreatedAt time.Time `json:"CreatedAt"`
	Action    string    `json:"action"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Level     int       `json:"level"`
	Section   int       `json:"section"`
}

// GetStatus fetches the current fridge status
func (c *ApiClient) GetStatus() (*FridgeStatus, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/fridge/status")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status request failed with status code: %d", resp.StatusCode)
	}

	var status FridgeStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetRecommendations fetches bucketed recommendations
func (c *ApiClient) GetRecommendations() ([]Recommendation, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/fridge/recommendations")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommendations request failed with status code: %d", resp.StatusCode)
	}

	var body struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Recommendations, nil
}

// GetHistory fetches the most recent audit events
func (c *ApiClient) GetHistory() ([]HistoryEvent, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/fridge/history")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history request failed with status code: %d", resp.StatusCode)
	}

	var body struct {
		Events []HistoryEvent `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Events, nil
}

// RetrieveItem takes a specific item out of the fridge
func (c *ApiClient) RetrieveItem(itemID string) (string, error) {
	url := fmt.Sprintf("%s/api/v1/fridge/items/%s/retrieve", c.BaseURL, itemID)
	resp, err := c.httpClient.Post(url, "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return decodeMessage(resp)
}

// PressTakeOut presses the physical take-out button: the fridge picks the
// item most in need of attention
func (c *ApiClient) PressTakeOut() (string, error) {
	payload := bytes.NewBufferString(`{"button_type": "take_out"}`)
	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/fridge/button", "application/json", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return decodeMessage(resp)
}

func decodeMessage(resp *http.Response) (string, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return "", fmt.Errorf("unexpected response: %s", data)
	}
	if !body.Success {
		return "", fmt.Errorf("%s", body.Error)
	}
	return body.Message, nil
}
