package fridge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartfridge/internal/models"
)

func TestParseTemperature(t *testing.T) {
	testCases := []struct {
		input string
		want  int
	}{
		{"4", 4},
		{"-18", -18},
		{"-18°C", -18},
		{"4°C", 4},
		{"约6度", 6},
		{"2-6", -2},
		{"minus 5 - cold", -5},
		{"", DefaultTemp},
		{"unknown", DefaultTemp},
		{"零下", DefaultTemp},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, ParseTemperature(tc.input), "input %q", tc.input)
	}
}

func TestParseShelfLife(t *testing.T) {
	testCases := []struct {
		input string
		want  int
	}{
		{"长期", models.LongTermSentinel},
		{"永久", models.LongTermSentinel},
		{"无保质期", models.LongTermSentinel},
		{"长期保存", models.LongTermSentinel},
		{"long-term", models.LongTermSentinel},
		{"Permanent", models.LongTermSentinel},
		{"no expiry", models.LongTermSentinel},
		{"7", 7},
		{"30", 30},
		{"7天", 7},
		{"约14日", 14},
		{"about 7 days", 7},
		{"", DefaultShelfLife},
		{"abc", DefaultShelfLife},
		{"0", DefaultShelfLife},
		{"-3", DefaultShelfLife},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, ParseShelfLife(tc.input), "input %q", tc.input)
	}
}
