package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate_Rejects(t *testing.T) {
	mutate := func(f func(*Config)) Config {
		c := DefaultConfig()
		f(&c)
		return c
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"unordered sell levels", mutate(func(c *Config) { c.SellL2 = 0.40 })},
		{"zero sell level", mutate(func(c *Config) { c.SellL1 = 0 })},
		{"sell fraction above 1", mutate(func(c *Config) { c.SellL1Pct = 1.5 })},
		{"inverted buy zone", mutate(func(c *Config) { c.BuyZoneLow = 0.98 })},
		{"deep buy above zone", mutate(func(c *Config) { c.DeepBuy = 0.95 })},
		{"near band swallows sell level", mutate(func(c *Config) { c.NearDMA = 0.20 })},
		{"zero index extreme", mutate(func(c *Config) { c.IndexExtreme = 0 })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
