package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no .env is picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
}

func TestLoad_MemoryDriverWithoutDatabase(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("ALLOWED_ORIGINS", "https://ops.example.com, https://admin.example.com")
	t.Setenv("HTTP_WRITE_TIMEOUT", "45s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, []string{"https://ops.example.com", "https://admin.example.com"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 45*time.Second, cfg.App.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.App.ReadTimeout)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	chdirTemp(t)
	for _, key := range []string{"STORAGE_DRIVER", "JWT_SECRET_KEY", "DB_PASSWORD", "DB_NAME"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	env := "STORAGE_DRIVER=postgres\nJWT_SECRET_KEY=from-file\nDB_PASSWORD=pw\nDB_NAME=fleet_test\n"
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte(env), 0o600))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/fleet_test?sslmode=disable", cfg.DatabaseURL())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Storage:  StorageConfig{Driver: StorageDriverPostgres},
		Database: DatabaseConfig{Password: "pw"},
		JWT:      JWTConfig{Secret: "s", AccessExpiration: "1h"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"postgres needs password", func(c *Config) { c.Database.Password = "" }, "DB_PASSWORD"},
		{"secret required", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET_KEY"},
		{"bad expiration", func(c *Config) { c.JWT.AccessExpiration = "soon" }, "JWT_ACCESS_EXPIRATION_TIME"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }, "STORAGE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
