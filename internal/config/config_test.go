package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		want              *Config
		wantErrorContains []string
	}{
		{
			name:          "defaults",
			configContent: "",
			want: &Config{
				Storage: StorageConfig{Adapter: "fs", Path: filepath.Join("/data", "notes"), Key: "tg_notes_list"},
				Display: DisplayConfig{Sort: "date-desc", DateLayout: "02.01.2006 15:04", Untitled: "Untitled"},
				Host:    HostConfig{HeaderColor: "#1c1c1e", BackgroundColor: "#0d0d0d"},
				Log:     LogConfig{Level: "info"},
			},
		},
		{
			name: "custom values",
			configContent: `storage:
  adapter: sqlite
  path: /tmp/notes.db
  key: work
display:
  sort: priority
  locale: ru
  untitled: Без названия
host:
  enabled: true
  header_color: "#ffffff"
log:
  level: debug
  file: /tmp/notes.log
`,
			want: &Config{
				Storage: StorageConfig{Adapter: "sqlite", Path: "/tmp/notes.db", Key: "work"},
				Display: DisplayConfig{Sort: "priority", Locale: "ru", DateLayout: "02.01.2006 15:04", Untitled: "Без названия"},
				Host:    HostConfig{Enabled: true, HeaderColor: "#ffffff", BackgroundColor: "#0d0d0d"},
				Log:     LogConfig{Level: "debug", File: "/tmp/notes.log"},
			},
		},
		{
			name:          "environment overrides file",
			configContent: "storage:\n  key: from_file\n",
			env:           map[string]string{"NOTES_STORAGE_KEY": "from_env", "NOTES_DISPLAY_SORT": "date-asc"},
			want: &Config{
				Storage: StorageConfig{Adapter: "fs", Path: filepath.Join("/data", "notes"), Key: "from_env"},
				Display: DisplayConfig{Sort: "date-asc", DateLayout: "02.01.2006 15:04", Untitled: "Untitled"},
				Host:    HostConfig{HeaderColor: "#1c1c1e", BackgroundColor: "#0d0d0d"},
				Log:     LogConfig{Level: "info"},
			},
		},
		{
			name:              "invalid YAML format",
			configContent:     "storage:\n  adapter: fs\n  invalid yaml [[[\n",
			wantErrorContains: []string{"configuration file found but could not be read"},
		},
		{
			name: "validation errors are translated",
			configContent: `storage:
  adapter: redis
  key: ../escape
display:
  sort: random
host:
  header_color: red
`,
			wantErrorContains: []string{
				"invalid configuration",
				"adapter must be one of [fs sqlite memory]",
				"key must be a plain name without path separators or wildcards",
				"sort must be one of [date-desc date-asc priority pinned]",
				"header_color must be a valid HEX color",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.configContent)

			got, err := Load(path)
			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				for _, s := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), s)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_MissingFileInSearchPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fs", got.Storage.Adapter)
}

func TestValidate_MemoryNeedsNoPath(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{Adapter: "memory", Key: "k"},
		Display: DisplayConfig{Sort: "pinned", DateLayout: "x", Untitled: "u"},
		Host:    HostConfig{HeaderColor: "#000", BackgroundColor: "#000"},
		Log:     LogConfig{Level: "warn"},
	}
	require.NoError(t, cfg.Validate())

	cfg.Storage.Adapter = "fs"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path")
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogConfig{Level: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LogConfig{Level: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: ""}.SlogLevel())
}
