package fridge

import (
	"strconv"
	"strings"
)

// Defaults applied when the classifier output cannot be parsed. Parsing never
// fails: anything unreadable degrades to these values.
const (
	DefaultTemp      = 4
	DefaultShelfLife = 7
)

// Keywords meaning "does not expire". The vision model answers in Chinese or
// English depending on the item, so both sets are recognized.
var longTermKeywords = []string{
	"长期", "永久", "无保质期", "无期限", "长期保存", "无限期", "不限期",
	"long-term", "long term", "permanent", "no expiry", "unlimited", "indefinite",
}

// ParseTemperature extracts a storage temperature from free-form model output
// such as "-18°C", "4" or "约6度". The first run of digits is taken as the
// magnitude; a minus sign anywhere in the string negates it, even when the
// minus is not adjacent to the digits. No digits at all yields DefaultTemp.
func ParseTemperature(s string) int {
	s = strings.TrimSpace(s)
	digits := firstDigitRun(s)
	if digits == "" {
		return DefaultTemp
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return DefaultTemp
	}
	if strings.Contains(s, "-") {
		return -n
	}
	return n
}

// ParseShelfLife extracts a shelf life in days from free-form model output.
// Indefinite keywords map to the long-term sentinel, a bare positive integer
// is taken as-is, and a day-unit marker ("7天", "about 7 days") falls back to
// the first digit run. Anything else yields DefaultShelfLife.
func ParseShelfLife(s string) int {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, kw := range longTermKeywords {
		if strings.Contains(lower, kw) {
			return -1
		}
	}

	if n, err := strconv.Atoi(lower); err == nil && n > 0 {
		return n
	}

	if strings.Contains(lower, "天") || strings.Contains(lower, "日") || strings.Contains(lower, "day") {
		if digits := firstDigitRun(lower); digits != "" {
			if n, err := strconv.Atoi(digits); err == nil {
				return n
			}
		}
	}

	return DefaultShelfLife
}

// firstDigitRun returns the first maximal run of ASCII digits in s.
func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
