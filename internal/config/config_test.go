package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "taskvault", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Empty(t, cfg.SendGridAPIKey)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("PORT", "3000")

	cfg := Load()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "supersecret", cfg.JWTSecret)
	assert.Equal(t, "3000", cfg.Port)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "pw",
		DBName:     "taskvault",
		DBSSLMode:  "require",
	}

	assert.Equal(t,
		"host=db user=app password=pw dbname=taskvault port=5433 sslmode=require TimeZone=UTC",
		cfg.DSN())
}
