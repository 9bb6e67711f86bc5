package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "resort.db", cfg.Database.DSN)
	require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resort.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
database:
  driver: postgres
  dsn: "host=localhost user=ski dbname=resort"
log:
  mode: prod
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "prod", cfg.Log.Mode)

	t.Setenv("SKI_SERVER_ADDR", ":7070")
	t.Setenv("SKI_DATABASE_DRIVER", "memory")
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.Addr)
	require.Equal(t, "memory", cfg.Database.Driver)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite ok", Config{Server: ServerConfig{Addr: ":1"}, Database: DatabaseConfig{Driver: "sqlite", DSN: "x.db"}}, false},
		{"memory needs no dsn", Config{Server: ServerConfig{Addr: ":1"}, Database: DatabaseConfig{Driver: "memory"}}, false},
		{"empty addr", Config{Database: DatabaseConfig{Driver: "memory"}}, true},
		{"postgres without dsn", Config{Server: ServerConfig{Addr: ":1"}, Database: DatabaseConfig{Driver: "postgres"}}, true},
		{"unknown driver", Config{Server: ServerConfig{Addr: ":1"}, Database: DatabaseConfig{Driver: "mysql", DSN: "x"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
