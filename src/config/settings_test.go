package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticSettings(t *testing.T) {
	s := StaticSettings{
		KeyMaxSeatHoldMinutes: "15",
		KeyMaxBaggageWeightKg: "25.5",
		"broken":              "not-a-number",
	}

	assert.Equal(t, "15", s.Get(KeyMaxSeatHoldMinutes, "10"))
	assert.Equal(t, "10", s.Get(KeyCancelBeforeMinutes, "10"))

	assert.Equal(t, 15, s.Int(KeyMaxSeatHoldMinutes, 10))
	assert.Equal(t, 10, s.Int(KeyCancelBeforeMinutes, 10))
	assert.Equal(t, 10, s.Int("broken", 10))

	assert.Equal(t, 25.5, s.Float(KeyMaxBaggageWeightKg, 20))
	assert.Equal(t, 20.0, s.Float("broken", 20))

	assert.Nil(t, s.Reload())
}

func TestSettingsCache(t *testing.T) {
	s := NewSettings(nil, nil)
	s.values = map[string]string{
		KeyMaxSeatHoldMinutes:   "30",
		KeyBaggageFeePercentage: "12.5",
		"empty":                 "",
	}

	assert.Equal(t, "30", s.Get(KeyMaxSeatHoldMinutes, "10"))
	assert.Equal(t, 30, s.Int(KeyMaxSeatHoldMinutes, 10))
	assert.Equal(t, 12.5, s.Float(KeyBaggageFeePercentage, 10))

	t.Run("empty values fall through to the default", func(t *testing.T) {
		assert.Equal(t, "x", s.Get("empty", "x"))
		assert.Equal(t, 7, s.Int("empty", 7))
	})

	t.Run("missing keys fall through to the default", func(t *testing.T) {
		assert.Equal(t, 5, s.Int(KeyCancelBeforeMinutes, 5))
	})
}
