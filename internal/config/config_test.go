package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:               "3000",
		Env:                "development",
		DBDriver:           DriverSQLite,
		DBSQLitePath:       ":memory:",
		TracingSampleRatio: 1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"sqlite development", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.DBSQLitePath = "" }, true},
		{"postgres without host", func(c *Config) {
			c.DBDriver = DriverPostgres
			c.DBName = "inkwell"
		}, true},
		{"negative pool", func(c *Config) { c.DBMaxOpenConns = -1 }, true},
		{"sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }, true},
		{"production on sqlite", func(c *Config) { c.Env = "production" }, true},
		{"production with default password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = DriverPostgres
			c.DBHost = "db"
			c.DBName = "inkwell"
			c.DBPassword = "password"
			c.DBSSLMode = "require"
		}, true},
		{"production with ssl disabled", func(c *Config) {
			c.Env = "prod"
			c.DBDriver = DriverPostgres
			c.DBHost = "db"
			c.DBName = "inkwell"
			c.DBPassword = "s3cure-and-long"
			c.DBSSLMode = "disable"
		}, true},
		{"production fully configured", func(c *Config) {
			c.Env = "production"
			c.DBDriver = DriverPostgres
			c.DBHost = "db"
			c.DBName = "inkwell"
			c.DBPassword = "s3cure-and-long"
			c.DBSSLMode = "verify-full"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverridesAndNormalization(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "  SQLITE ")
	t.Setenv("DB_SQLITE_PATH", ":memory:")
	t.Setenv("PORT", "9099")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, ":memory:", c.DBSQLitePath)
	assert.Equal(t, "9099", c.Port)
	assert.Equal(t, "inkwell:events", c.EventsChannel)
	assert.False(t, c.IsProduction())
}
