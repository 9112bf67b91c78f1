package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/coursegrid/internal/config"
	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "http", cfg.Catalog.Source)
	require.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	require.Equal(t, catalog.DefaultPartitions(), cfg.Catalog.Partitions)
	require.Equal(t, "schedule-1", cfg.Timetable.InitialTableID)
	require.Equal(t, 100, cfg.Search.PageSize)
	require.False(t, cfg.Auth.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
catalog:
  source: file
  dir: /srv/catalog
  timeout: 3s
  refresh: "0 6 * * *"
  partitions:
    - id: majors
      path: /majors.json
search:
  page_size: 50
export:
  term_start: "2026-03-02"
  term_end: "2026-06-19"
`), 0o600))

	t.Setenv("COURSEGRID_CONFIG_PATH", path)
	t.Setenv("COURSEGRID_SERVER_PORT", "9100")
	t.Setenv("COURSEGRID_TRANSPORT", "stdio")
	t.Setenv("COURSEGRID_AUTH_ENABLED", "true")
	t.Setenv("COURSEGRID_CATALOG_DIR", "/tmp/catalog")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, "file", cfg.Catalog.Source)
	require.Equal(t, "/tmp/catalog", cfg.Catalog.Dir)
	require.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	require.Equal(t, "0 6 * * *", cfg.Catalog.Refresh)
	require.Equal(t, []catalog.Partition{{ID: "majors", Path: "/majors.json"}}, cfg.Catalog.Partitions)
	require.Equal(t, 50, cfg.Search.PageSize)

	start, end, loc, err := cfg.Export.Window()
	require.NoError(t, err)
	require.Equal(t, "Asia/Seoul", loc.String())
	require.True(t, time.Date(2026, 3, 2, 0, 0, 0, 0, loc).Equal(start), start)
	require.True(t, time.Date(2026, 6, 19, 0, 0, 0, 0, loc).Equal(end), end)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port", key: "COURSEGRID_SERVER_PORT", value: "eighty"},
		{name: "auth", key: "COURSEGRID_AUTH_ENABLED", value: "maybe"},
		{name: "transport", key: "COURSEGRID_TRANSPORT", value: "carrier-pigeon"},
		{name: "source", key: "COURSEGRID_CATALOG_SOURCE", value: "ftp"},
		{name: "term", key: "COURSEGRID_EXPORT_TERM_START", value: "March"},
		{name: "timezone", key: "COURSEGRID_EXPORT_TIMEZONE", value: "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("COURSEGRID_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := config.Load()
	require.Error(t, err)
}
