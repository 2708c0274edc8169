package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 300*time.Millisecond, cfg.RevealDelay)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "pitchside.db", cfg.DBName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Slack.Enabled())
	assert.False(t, cfg.PubSub.Enabled())
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PITCHSIDE_API_URL": "https://predict.example.com/",
		"PORT":              "9090",
		"DEBOUNCE":          "150ms",
		"REVEAL_DELAY":      "1s",
		"REQUEST_TIMEOUT":   "2s",
		"LOG_LEVEL":         "debug",
		"SLACK_BOT_TOKEN":   "xoxb-test",
		"SLACK_CHANNEL_ID":  "C123",
		"GCP_PROJECT":       "proj",
		"PUBSUB_TOPIC":      "outcomes",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://predict.example.com", cfg.APIURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
	assert.Equal(t, time.Second, cfg.RevealDelay)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Slack.Enabled())
	assert.True(t, cfg.PubSub.Enabled())
}

func TestFromLookup_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"unparseable debounce", map[string]string{"DEBOUNCE": "soon"}},
		{"negative reveal delay", map[string]string{"REVEAL_DELAY": "-1s"}},
		{"bare number timeout", map[string]string{"REQUEST_TIMEOUT": "10"}},
		{"unknown log level", map[string]string{"LOG_LEVEL": "chatty"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tc.env))
			assert.Error(t, err)
		})
	}
}
