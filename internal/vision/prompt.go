package vision

import (
	"encoding/json"
	"fmt"

	"smartfridge/internal/models"
)

// classificationPrompt builds the placement instruction for an item photo.
// The current fridge state is embedded so the model can suggest a free
// section; its level suggestion is advisory only, the resolver re-derives the
// level from temperature.
func classificationPrompt(status models.FridgeStatus) (string, error) {
	state, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode fridge status: %w", err)
	}

	return fmt.Sprintf(`You are the AI assistant of a smart fridge. The user is adding a new item.

Fridge layout:
- 5 levels, 4 sections per level
- Temperatures: level 0 is -18°C (deep freeze), level 1 is -5°C (freezer), level 2 is 2°C (chilled), level 3 is 6°C (fresh), level 4 is 10°C (cool)

Current fridge state:
%s

Your task:
1. Identify the item in the photo (it may not be food).
2. Decide its optimal storage temperature between -18°C and 10°C.
3. Decide its shelf life: a number of days for food, or "long-term" for
   non-food items (tools, toys, instruments).
4. Pick the level whose temperature best matches, and a free section on it.

Respond with only a JSON object, no other text:
{
  "item_name": "the item's original name as recognized",
  "optimal_temp": <number, may be negative>,
  "shelf_life_days": <number of days, or "long-term">,
  "category": "fruit/vegetable/meat/dairy/grain/seafood/bakery/beverage/other/non-food",
  "level": <number>,
  "section": <number>,
  "reasoning": "why this slot"
}

Rules:
- Fruit, vegetables, dairy, grains, bakery and beverages belong at 2-6°C, never in a freezer level.
- Meat and seafood belong at -5°C, frozen goods at -18°C.
- shelf_life_days must be a bare number for food; only non-food items are "long-term".
- Keep the recognized item name, do not replace it with a category name.`, state), nil
}

// recommendationPrompt asks for bucketed recommendations over the current
// contents. No image is involved; this is a text-only analysis call.
func recommendationPrompt(status models.FridgeStatus) (string, error) {
	state, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode fridge status: %w", err)
	}

	return fmt.Sprintf(`You are the AI assistant of a smart fridge. Analyze the contents and recommend actions.

Current fridge state:
%s

Consider: items expiring within 2 days, already expired items, fresh produce,
and items stored long-term.

Respond with only a JSON object, no other text:
{
  "recommendations": [
    {
      "type": "expiring_soon|fresh|long_term|general",
      "title": "short title",
      "items": [],
      "message": "what the user should know",
      "action": "what the user should do"
    }
  ],
  "total_recommendations": <number>
}`, state), nil
}
