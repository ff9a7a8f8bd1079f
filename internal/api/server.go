package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartfridge/internal/fridge"
	"smartfridge/internal/history"
	"smartfridge/internal/monitoring"
	"smartfridge/internal/sensor"
)

// FridgeAPI is the HTTP surface of the fridge service. The agent is injected
// by the process entry point; handlers hold no state of their own.
type FridgeAPI struct {
	Router    *gin.Engine
	agent     *fridge.Agent
	hub       *Hub
	trail     *history.Store
	monitor   *monitoring.Monitor
	proximity *sensor.TriggerDetector
	uploadDir string
}

// NewFridgeAPI creates the API over an agent. trail and proximity may be nil
// when no audit history or proximity sensing is configured.
func NewFridgeAPI(agent *fridge.Agent, trail *history.Store, monitor *monitoring.Monitor, proximity *sensor.TriggerDetector, uploadDir string) *FridgeAPI {
	api := &FridgeAPI{
		Router:    gin.Default(),
		agent:     agent,
		hub:       NewHub(),
		trail:     trail,
		monitor:   monitor,
		proximity: proximity,
		uploadDir: uploadDir,
	}
	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (f *FridgeAPI) setupRoutes() {
	f.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "smart fridge API is running"})
	})
	f.Router.GET("/ws", f.handleWebSocket)

	v1 := f.Router.Group("/api/v1")
	{
		// Inventory
		v1.GET("/fridge/status", f.GetStatus)
		v1.POST("/fridge/items", f.PlaceItem)
		v1.POST("/fridge/items/:id/retrieve", f.RetrieveItem)

		// Recommendations
		v1.GET("/fridge/recommendations", f.GetRecommendations)

		// Physical buttons and external sensors
		v1.POST("/fridge/button", f.PressButton)
		v1.POST("/fridge/proximity", f.ReportProximity)

		// Operations
		v1.GET("/fridge/history", f.GetHistory)
		v1.GET("/fridge/metrics", f.GetMetrics)
	}
}

// GetStatus serves the full inventory view.
func (f *FridgeAPI) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, f.agent.Status())
}

// PlaceItem accepts an item photo upload and runs the placement flow.
func (f *FridgeAPI) PlaceItem(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no file uploaded"})
		return
	}

	if err := os.MkdirAll(f.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	imagePath := filepath.Join(f.uploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, imagePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	defer os.Remove(imagePath)

	result, err := f.agent.PlaceItem(c.Request.Context(), imagePath)
	if err != nil {
		f.hub.Broadcast("action_completed", gin.H{"success": false, "error": err.Error()})
		c.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	f.hub.Broadcast("action_completed", result)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"item_id": result.ItemID,
		"level":   result.Level,
		"section": result.Section,
		"message": result.Message,
	})
}

// RetrieveItem takes an item out of the fridge by id.
func (f *FridgeAPI) RetrieveItem(c *gin.Context) {
	result, err := f.agent.RetrieveItem(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	f.hub.Broadcast("action_completed", result)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"item_name": result.ItemName,
		"message":   result.Message,
	})
}

// GetRecommendations serves bucketed recommendations.
func (f *FridgeAPI) GetRecommendations(c *gin.Context) {
	recs := f.agent.Recommendations(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"recommendations":       recs,
		"total_recommendations": len(recs),
	})
}

// PressButton handles the two physical buttons on the rig.
func (f *FridgeAPI) PressButton(c *gin.Context) {
	var req struct {
		ButtonType string `json:"button_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	f.hub.Broadcast("button_pressed", gin.H{"button_type": req.ButtonType})

	switch req.ButtonType {
	case "place":
		stored, capacity := f.agent.StoredItems(), f.agent.Capacity()
		if stored >= capacity {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "fridge is full, please retrieve some items first",
				"action":  "place_item",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"message":         "hold the item in front of the camera; it will be recognized and stored",
			"action":          "place_item",
			"current_items":   stored,
			"max_capacity":    capacity,
			"available_space": capacity - stored,
		})

	case "take_out":
		result, err := f.agent.TakeOutNext()
		if err != nil {
			if errors.Is(err, fridge.ErrNotFound) {
				c.JSON(http.StatusOK, gin.H{
					"success": true,
					"message": "nothing to take out, the fridge is empty",
					"action":  "take_out_item",
				})
				return
			}
			c.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		f.hub.Broadcast("action_completed", result)
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   result.Message,
			"action":    "take_out_item",
			"item_name": result.ItemName,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("unknown button type %q", req.ButtonType)})
	}
}

// ReportProximity receives approach reports from the standalone
// face-detection process. The poller debounces them before any event fires.
func (f *FridgeAPI) ReportProximity(c *gin.Context) {
	if f.proximity != nil {
		f.proximity.Trigger()
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

// GetHistory serves the most recent audit events.
func (f *FridgeAPI) GetHistory(c *gin.Context) {
	if f.trail == nil {
		c.JSON(http.StatusOK, gin.H{"events": []history.Event{}})
		return
	}
	events, err := f.trail.Recent(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetMetrics serves the in-memory operational metrics.
func (f *FridgeAPI) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, f.monitor.GetMetrics())
}

// NotifyProximity pushes a proximity event with fresh recommendations to all
// connected clients. Called by the sensor consumer loop.
func (f *FridgeAPI) NotifyProximity() {
	f.hub.Broadcast("proximity", gin.H{
		"recommendations": fridge.Summarize(f.agent.Status().Inventory),
	})
}

// statusFor maps engine error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, fridge.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, fridge.ErrInvalidSection), errors.Is(err, fridge.ErrInvalidLevel):
		return http.StatusBadRequest
	case errors.Is(err, fridge.ErrFridgeFull), errors.Is(err, fridge.ErrSlotOccupied):
		return http.StatusConflict
	case errors.Is(err, fridge.ErrClassifierUnavailable),
		errors.Is(err, fridge.ErrClassifierMalformed),
		errors.Is(err, fridge.ErrIncompleteClassification):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
