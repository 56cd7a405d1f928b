package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
		EndpointConfigs: []EndpointConfig{
			{Path: "/applications/bulk-urls", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
			{Path: "/ai/", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		},
	}
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	// Burst of 2 for bulk-urls, then the bucket is dry.
	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/applications/bulk-urls", "POST")
		require.True(t, allowed, "request %d within burst", i+1)
	}

	allowed, info := l.Allow("1.2.3.4", "/applications/bulk-urls", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/applications/bulk-urls", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.2.3.4", "/applications/bulk-urls", "POST")
	require.False(t, allowed)

	// A different client has its own bucket.
	allowed, _ = l.Allow("5.6.7.8", "/applications/bulk-urls", "POST")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistBypasses(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.1"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/applications/bulk-urls", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_BlacklistDenies(t *testing.T) {
	cfg := testConfig()
	cfg.Blacklist["6.6.6.6"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("6.6.6.6", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/applications/bulk-urls", "POST")
		require.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name     string
		path     string
		method   string
		wantPath string // empty means no match (default tier)
	}{
		{"exact bulk-urls", "/applications/bulk-urls", "POST", "/applications/bulk-urls"},
		{"ai prefix", "/ai/keywords", "POST", "/ai/"},
		{"resume compile", "/resumes/abc/compile", "POST", "/resumes/"},
		{"auth prefix", "/auth/login", "POST", "/auth/"},
		{"reads fall through", "/users/abc/applications", "GET", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantPath == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}
}

func TestMatchEndpoint_HealthUnlimited(t *testing.T) {
	got := MatchEndpoint("/health", "GET", DefaultEndpointConfigs())
	require.NotNil(t, got)
	assert.LessOrEqual(t, got.Limit, 0)
}

func TestTokenBucket_Refills(t *testing.T) {
	// 10 tokens per second, capacity 1.
	tb := newTokenBucket(1, 10)

	require.True(t, tb.allow())
	require.False(t, tb.allow())

	time.Sleep(150 * time.Millisecond)
	assert.True(t, tb.allow(), "bucket refills over time")
}

func TestLoadConfig_DisabledViaEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}
