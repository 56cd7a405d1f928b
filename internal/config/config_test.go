package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:              8080,
		DatabaseURL:       "postgres://localhost:5432/applytrack",
		GeminiAPIKey:      "test-key",
		GatewayTimeout:    DefaultGatewayTimeout,
		IngestConcurrency: DefaultIngestConcurrency,
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_MissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestConfig_Validate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.GeminiAPIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestConfig_Validate_BadConcurrency(t *testing.T) {
	cfg := validConfig()
	cfg.IngestConcurrency = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_BadTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.GatewayTimeout = 100 * time.Millisecond
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestLoad_FailsFastWithoutEnv(t *testing.T) {
	// Eager validation: a process with no configuration must fail at Load,
	// not on first use of a gateway.
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ReadsTuningKnobs(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/applytrack")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("INGEST_CONCURRENCY", "8")
	t.Setenv("GATEWAY_TIMEOUT_SECONDS", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.IngestConcurrency)
	assert.Equal(t, 10*time.Second, cfg.GatewayTimeout)
}

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestNewPasswordConfig_OutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "20")
	_, err := NewPasswordConfig()
	assert.Error(t, err)
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.True(t, cfg.VerifyPassword("secret-password", hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}
