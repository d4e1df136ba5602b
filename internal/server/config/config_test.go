package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.SecretKey)
	assert.Equal(t, "authgate", cfg.TokenIssuer)
	assert.Equal(t, "authgate-clients", cfg.TokenAudience)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenValidityDuration)
}

func TestLoadConfig_NoOverrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"authgate"}

	cfg := LoadConfig()

	want := &Config{}
	want.LoadDefaults()
	assert.Equal(t, want, cfg)
}
