package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"smartfridge/internal/fridge"
	"smartfridge/internal/models"
)

// maxAttempts bounds retries against the vision endpoint; transient failures
// back off exponentially between attempts.
const maxAttempts = 3

// Classifier wraps a multimodal model behind the narrow interface the fridge
// agent needs: classify an image, or recommend based on current contents.
type Classifier struct {
	model llms.Model
	// sleep is swapped out in tests so retry backoff doesn't stall them.
	sleep func(time.Duration)
}

// NewClassifier creates a classifier over any langchaingo model.
func NewClassifier(model llms.Model) *Classifier {
	return &Classifier{model: model, sleep: time.Sleep}
}

// Classify sends the item photo plus an instruction embedding the current
// fridge state and returns the model's raw classification. It fails with
// ErrClassifierUnavailable when the endpoint cannot be reached after retries,
// ErrClassifierMalformed when the reply holds no JSON object, and
// ErrIncompleteClassification when required fields are missing.
func (c *Classifier) Classify(ctx context.Context, image []byte, status models.FridgeStatus) (models.RawClassification, error) {
	prompt, err := classificationPrompt(status)
	if err != nil {
		return models.RawClassification{}, err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart("image/jpeg", image),
				llms.TextPart(prompt),
			},
		},
	}

	reply, err := c.generate(ctx, content)
	if err != nil {
		return models.RawClassification{}, err
	}

	payload, err := extractJSON(reply)
	if err != nil {
		return models.RawClassification{}, err
	}

	var raw models.RawClassification
	if err := json.Unmarshal(payload, &raw); err != nil {
		return models.RawClassification{}, fmt.Errorf("%w: %v", fridge.ErrClassifierMalformed, err)
	}
	if err := validate(raw); err != nil {
		return models.RawClassification{}, err
	}
	return raw, nil
}

// Recommend asks the model for bucketed recommendations over the current
// contents. Callers fall back to the local summarizer on any error.
func (c *Classifier) Recommend(ctx context.Context, status models.FridgeStatus) ([]models.Recommendation, error) {
	prompt, err := recommendationPrompt(status)
	if err != nil {
		return nil, err
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	reply, err := c.generate(ctx, content)
	if err != nil {
		return nil, err
	}

	payload, err := extractJSON(reply)
	if err != nil {
		return nil, err
	}

	var out struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", fridge.ErrClassifierMalformed, err)
	}
	return out.Recommendations, nil
}

// generate calls the model with bounded retries and exponential backoff. The
// backoff sleep respects context cancellation.
func (c *Classifier) generate(ctx context.Context, content []llms.MessageContent) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Second << (attempt - 1)
			log.Printf("vision call failed (attempt %d/%d), retrying in %s: %v", attempt, maxAttempts, delay, lastErr)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", fridge.ErrClassifierUnavailable, ctx.Err())
			default:
				c.sleep(delay)
			}
		}

		resp, err := c.model.GenerateContent(ctx, content, llms.WithMaxTokens(1024))
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("empty response")
			continue
		}
		return strings.TrimSpace(resp.Choices[0].Content), nil
	}
	return "", fmt.Errorf("%w: %v", fridge.ErrClassifierUnavailable, lastErr)
}

// extractJSON returns the substring between the first '{' and the last '}',
// which is how the model's surrounding prose is stripped from its JSON answer.
func extractJSON(s string) ([]byte, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in response", fridge.ErrClassifierMalformed)
	}
	return []byte(s[start : end+1]), nil
}

// validate checks the classification carries every required field. Free-form
// string fields only need to be present; the classification parser handles
// their content defensively.
func validate(raw models.RawClassification) error {
	missing := func(field string) error {
		return fmt.Errorf("%w: missing %s", fridge.ErrIncompleteClassification, field)
	}
	switch {
	case raw.ItemName == "":
		return missing("item_name")
	case raw.OptimalTemp == "":
		return missing("optimal_temp")
	case raw.ShelfLifeDays == "":
		return missing("shelf_life_days")
	case raw.Category == "":
		return missing("category")
	case raw.Level == nil:
		return missing("level")
	case raw.Section == nil:
		return missing("section")
	}
	return nil
}
