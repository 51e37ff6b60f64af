package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STABLE_ROUNDS", "")
	t.Setenv("SCROLL_SETTLE_MS", "")
	t.Setenv("MINE_CONTACTS", "")

	cfg := Load()
	assert.Equal(t, 5, cfg.StableRounds)
	assert.Equal(t, 1500*time.Millisecond, cfg.ScrollSettle)
	assert.Equal(t, 1500*time.Millisecond, cfg.SocialSettle)
	assert.True(t, cfg.MineContacts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STABLE_ROUNDS", "3")
	t.Setenv("SCROLL_SETTLE_MS", "250")
	t.Setenv("MINE_CONTACTS", "false")
	t.Setenv("RATE_LIMIT_DELAY_MS", "oops")

	cfg := Load()
	assert.Equal(t, 3, cfg.StableRounds)
	assert.Equal(t, 250*time.Millisecond, cfg.ScrollSettle)
	assert.False(t, cfg.MineContacts)
	assert.Equal(t, 2000, cfg.RateLimitDelay)
}
