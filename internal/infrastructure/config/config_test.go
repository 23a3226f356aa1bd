package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"WMS_APP_NAME":                 os.Getenv("WMS_APP_NAME"),
		"WMS_APP_ENV":                  os.Getenv("WMS_APP_ENV"),
		"WMS_APP_PORT":                 os.Getenv("WMS_APP_PORT"),
		"WMS_DATABASE_HOST":            os.Getenv("WMS_DATABASE_HOST"),
		"WMS_DATABASE_PORT":            os.Getenv("WMS_DATABASE_PORT"),
		"WMS_DATABASE_USER":            os.Getenv("WMS_DATABASE_USER"),
		"WMS_DATABASE_PASSWORD":        os.Getenv("WMS_DATABASE_PASSWORD"),
		"WMS_DATABASE_DBNAME":          os.Getenv("WMS_DATABASE_DBNAME"),
		"WMS_DATABASE_SSLMODE":         os.Getenv("WMS_DATABASE_SSLMODE"),
		"WMS_DATABASE_MAX_OPEN_CONNS":  os.Getenv("WMS_DATABASE_MAX_OPEN_CONNS"),
		"WMS_DATABASE_MAX_IDLE_CONNS":  os.Getenv("WMS_DATABASE_MAX_IDLE_CONNS"),
		"WMS_JWT_SECRET":               os.Getenv("WMS_JWT_SECRET"),
		"WMS_SYNC_CRON_SECRET":         os.Getenv("WMS_SYNC_CRON_SECRET"),
		"WMS_QUICKBOOKS_CLIENT_ID":     os.Getenv("WMS_QUICKBOOKS_CLIENT_ID"),
		"WMS_QUICKBOOKS_CLIENT_SECRET": os.Getenv("WMS_QUICKBOOKS_CLIENT_SECRET"),
		"WMS_QUICKBOOKS_ENVIRONMENT":   os.Getenv("WMS_QUICKBOOKS_ENVIRONMENT"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "wms-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "wms", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "sandbox", cfg.QuickBooks.Environment)
		assert.Equal(t, "/admin/integrations", cfg.QuickBooks.AdminPageURL)
		assert.Equal(t, 30*time.Second, cfg.QuickBooks.RequestTimeout)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_NAME", "wms-test")
		os.Setenv("WMS_DATABASE_HOST", "db.internal")
		os.Setenv("WMS_DATABASE_PORT", "5433")
		os.Setenv("WMS_QUICKBOOKS_ENVIRONMENT", "production")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "wms-test", cfg.App.Name)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "production", cfg.QuickBooks.Environment)
	})

	t.Run("rejects invalid quickbooks environment", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_QUICKBOOKS_ENVIRONMENT", "staging")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quickbooks.environment")
	})

	t.Run("production requires secrets", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_ENV", "production")
		os.Setenv("WMS_JWT_SECRET", "too-short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("production rejects disabled ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_ENV", "production")
		os.Setenv("WMS_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("WMS_DATABASE_PASSWORD", "supersecret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("production accepts complete configuration", func(t *testing.T) {
		clearEnv()
		os.Setenv("WMS_APP_ENV", "production")
		os.Setenv("WMS_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("WMS_DATABASE_PASSWORD", "supersecret")
		os.Setenv("WMS_DATABASE_SSLMODE", "require")
		os.Setenv("WMS_SYNC_CRON_SECRET", "cron-secret-value")
		os.Setenv("WMS_QUICKBOOKS_CLIENT_ID", "qb-client")
		os.Setenv("WMS_QUICKBOOKS_CLIENT_SECRET", "qb-secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
		assert.Equal(t, "require", cfg.Database.SSLMode)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxOpenConns = 5
		cfg.Database.MaxIdleConns = 10
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("defaults pass validation", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})
}

func TestDSN(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "wms",
		Password: "p@ss/word",
		DBName:   "wms",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}
