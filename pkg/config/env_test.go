package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_TRACKINGID", "UA-1-1")
	t.Setenv("GA_DEBUG", "")
	t.Setenv("GA_PROTOCOL_VERSION", "")
	t.Setenv("GA_FLUSH_EVERY", "")

	env := LoadEnv()
	require.Equal(t, "UA-1-1", env.TrackingID)
	require.False(t, env.Debug)
	require.Equal(t, DefaultProtocolVersion, env.Version)
	require.Equal(t, DefaultFlushEvery, env.FlushEvery)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("GA_CLIENT_ID", "abc")
	t.Setenv("GA_DEBUG", "true")
	t.Setenv("GA_PROTOCOL_VERSION", "2")
	t.Setenv("GA_FLUSH_EVERY", "250ms")

	env := LoadEnv()
	require.Equal(t, "abc", env.ClientID)
	require.True(t, env.Debug)
	require.Equal(t, 2, env.Version)
	require.Equal(t, 250*time.Millisecond, env.FlushEvery)
}

func TestLoadEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("GA_DEBUG", "maybe")
	t.Setenv("GA_PROTOCOL_VERSION", "one")
	t.Setenv("GA_FLUSH_EVERY", "-1s")

	env := LoadEnv()
	require.False(t, env.Debug)
	require.Equal(t, DefaultProtocolVersion, env.Version)
	require.Equal(t, DefaultFlushEvery, env.FlushEvery)
}

func TestEndpoints(t *testing.T) {
	require.Equal(t, "https://www.google-analytics.com/collect", CollectURL)
	require.Equal(t, "https://www.google-analytics.com/batch", BatchURL)
	require.Equal(t, "https://www.google-analytics.com/debug/collect", DebugCollectURL)
}
