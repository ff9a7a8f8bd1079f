package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LongTermSentinel is the shelf-life value meaning "does not expire".
const LongTermSentinel = -1

// LooseString decodes a JSON string or number into a string. The vision
// model answers "4", 4 or "-18°C" interchangeably for the same field.
type LooseString string

// UnmarshalJSON never fails: anything that is not a JSON string is kept as
// its raw text for the classification parser to deal with.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = LooseString(str)
		return nil
	}
	*s = LooseString(strings.TrimSpace(string(data)))
	return nil
}

// LooseInt decodes a JSON number or numeric string into an int.
type LooseInt int

func (n *LooseInt) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err == nil {
		*n = LooseInt(v)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := strconv.Atoi(strings.TrimSpace(str))
		if err == nil {
			*n = LooseInt(parsed)
			return nil
		}
	}
	return fmt.Errorf("not an integer: %s", data)
}

// RawClassification is the loosely-structured JSON object returned by the
// vision model. Temperature and shelf life arrive as free-form values
// ("-18°C", "约7天", "长期") and must go through the classification parser
// before anything downstream touches them. Level and section are pointers so
// a missing field is distinguishable from zero.
type RawClassification struct {
	ItemName      string      `json:"item_name"`
	OptimalTemp   LooseString `json:"optimal_temp"`
	ShelfLifeDays LooseString `json:"shelf_life_days"`
	Category      string      `json:"category"`
	Level         *LooseInt   `json:"level"`
	Section       *LooseInt   `json:"section"`
	Reasoning     string      `json:"reasoning"`
}

// ItemClassification is the canonical, typed form of a classification,
// produced by the parser and consumed by the placement resolver.
type ItemClassification struct {
	DisplayName      string
	OptimalTemp      int
	ShelfLifeDays    int
	Category         string
	SuggestedLevel   int
	SuggestedSection int
	Reasoning        string
}
