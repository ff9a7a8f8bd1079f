package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"smartfridge/internal/device"
	"smartfridge/internal/fridge"
	"smartfridge/internal/models"
	"smartfridge/internal/monitoring"
	"smartfridge/internal/sensor"
)

// stubClassifier implements fridge.Classifier with canned answers.
type stubClassifier struct {
	raw     models.RawClassification
	rawErr  error
	recs    []models.Recommendation
	recsErr error
}

func (s *stubClassifier) Classify(ctx context.Context, image []byte, status models.FridgeStatus) (models.RawClassification, error) {
	return s.raw, s.rawErr
}

func (s *stubClassifier) Recommend(ctx context.Context, status models.FridgeStatus) ([]models.Recommendation, error) {
	return s.recs, s.recsErr
}

func looseInt(v int) *models.LooseInt {
	n := models.LooseInt(v)
	return &n
}

func testAPI(t *testing.T, classifier fridge.Classifier) (*FridgeAPI, *sensor.TriggerDetector) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledger := fridge.NewLedger(filepath.Join(t.TempDir(), "inventory.json"))
	rig := device.NewSimulator(fridge.TotalLevels, fridge.SectionsPerLevel)
	agent := fridge.NewAgent(fridge.DefaultZones(), ledger, classifier, rig, nil, monitoring.NewMonitor())

	trigger := &sensor.TriggerDetector{}
	return NewFridgeAPI(agent, nil, monitoring.NewMonitor(), trigger, t.TempDir()), trigger
}

func doRequest(api *FridgeAPI, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	api.Router.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "item.jpg")
	assert.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealthEndpoint(t *testing.T) {
	api, _ := testAPI(t, &stubClassifier{})

	w := doRequest(api, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestGetStatus(t *testing.T) {
	api, _ := testAPI(t, &stubClassifier{})

	w := doRequest(api, httptest.NewRequest(http.MethodGet, "/api/v1/fridge/status", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var status models.FridgeStatus
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, 0, status.TotalItems)
	assert.Equal(t, map[int]int{0: -18, 1: -5, 2: 2, 3: 6, 4: 10}, status.TemperatureLevels)
}

func TestPlaceItem(t *testing.T) {
	classifier := &stubClassifier{
		raw: models.RawClassification{
			ItemName:      "milk",
			OptimalTemp:   "4",
			ShelfLifeDays: "7",
			Category:      "dairy",
			Level:         looseInt(2),
			Section:       looseInt(0),
			Reasoning:     "keep chilled",
		},
	}
	api, _ := testAPI(t, classifier)

	w := doRequest(api, uploadRequest(t, "/api/v1/fridge/items"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(2), resp["level"])
	assert.Equal(t, float64(0), resp["section"])
	assert.Contains(t, resp["item_id"], "milk_")
}

func TestPlaceItemNoFile(t *testing.T) {
	api, _ := testAPI(t, &stubClassifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/fridge/items", nil)
	w := doRequest(api, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceItemClassifierDown(t *testing.T) {
	classifier := &stubClassifier{rawErr: fridge.ErrClassifierUnavailable}
	api, _ := testAPI(t, classifier)

	w := doRequest(api, uploadRequest(t, "/api/v1/fridge/items"))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRetrieveItem(t *testing.T) {
	classifier := &stubClassifier{
		raw: models.RawClassification{
			ItemName:      "milk",
			OptimalTemp:   "4",
			ShelfLifeDays: "7",
			Category:      "dairy",
			Level:         looseInt(2),
			Section:       looseInt(0),
		},
	}
	api, _ := testAPI(t, classifier)

	w := doRequest(api, uploadRequest(t, "/api/v1/fridge/items"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var placed map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	itemID := placed["item_id"].(string)

	w = doRequest(api, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/fridge/items/%s/retrieve", itemID), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "milk")
}

func TestRetrieveUnknownItem(t *testing.T) {
	api, _ := testAPI(t, &stubClassifier{})

	w := doRequest(api, httptest.NewRequest(http.MethodPost, "/api/v1/fridge/items/ghost/retrieve", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecommendationsFallsBack(t *testing.T) {
	classifier := &stubClassifier{recsErr: fridge.ErrClassifierUnavailable}
	api, _ := testAPI(t, classifier)

	w := doRequest(api, httptest.NewRequest(http.MethodGet, "/api/v1/fridge/recommendations", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recommendations []models.Recommendation `json:"recommendations"`
		Total           int                     `json:"total_recommendations"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, models.RecommendGeneral, resp.Recommendations[0].Type)
}

func TestPressButtonPlace(t *testing.T) {
	api, _ := testAPI(t, &stubClassifier{})

	body := strings.NewReader(`{"button_type": "place"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fridge/button", body)
	req.Header.Set("Content-Type", "application/json")

	w := doRequest(api, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "available_space")
}

func TestPressButtonTakeOutEmpty(t *testing.T) {
	api, _ := testAPI(t, &stubClassifier{})

	body := strings.NewReader(`{"button_type": "take_out"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fridge/button", body)
	req.Header.Set("Content-Type", "application/json")

	w := doRequest(api, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "empty")
}

func TestPressButtonUnknown(t *testing.T) {
	api, _ := testAPI(t, &stubClassifier{})

	body := strings.NewReader(`{"button_type": "self_destruct"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fridge/button", body)
	req.Header.Set("Content-Type", "application/json")

	w := doRequest(api, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportProximityArmsDetector(t *testing.T) {
	api, trigger := testAPI(t, &stubClassifier{})

	w := doRequest(api, httptest.NewRequest(http.MethodPost, "/api/v1/fridge/proximity", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, trigger.Near())
}

func TestGetHistoryWithoutTrail(t *testing.T) {
	api, _ := testAPI(t, &stubClassifier{})

	w := doRequest(api, httptest.NewRequest(http.MethodGet, "/api/v1/fridge/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "events")
}

func TestGetMetrics(t *testing.T) {
	api, _ := testAPI(t, &stubClassifier{})

	w := doRequest(api, httptest.NewRequest(http.MethodGet, "/api/v1/fridge/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uptime_seconds")
}
