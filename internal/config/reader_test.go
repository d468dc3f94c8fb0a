package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
		noFile   bool
		want     func(dir string) Config
		wantErr  bool
	}{
		{
			name:   "no config file",
			noFile: true,
			want: func(dir string) Config {
				return Config{
					Environment:     EnvironmentProduction,
					ConfigDirectory: dir,
					LogDirectory:    filepath.Join(dir, "logs"),
					StorageLimit:    DefaultStorageLimit,
				}
			},
		},
		{
			name: "all fields",
			contents: `
environment = "development"
log_directory = "/tmp/file-manager-logs"
seed_file = "seed.yaml"
storage_limit = 1024
user_id = 1
team_id = 2
`,
			want: func(dir string) Config {
				return Config{
					Environment:     EnvironmentDevelopment,
					ConfigDirectory: dir,
					LogDirectory:    "/tmp/file-manager-logs",
					SeedFile:        filepath.Join(dir, "seed.yaml"),
					StorageLimit:    1024,
					UserID:          1,
					TeamID:          2,
				}
			},
		},
		{
			name:     "storage limit falls back to the default",
			contents: `storage_limit = -1`,
			want: func(dir string) Config {
				return Config{
					Environment:     EnvironmentProduction,
					ConfigDirectory: dir,
					LogDirectory:    filepath.Join(dir, "logs"),
					StorageLimit:    DefaultStorageLimit,
				}
			},
		},
		{
			name:     "unknown environment",
			contents: `environment = "staging"`,
			wantErr:  true,
		},
		{
			name:     "broken toml",
			contents: `environment = `,
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			configFile := filepath.Join(dir, "default.toml")
			if !tc.noFile {
				require.NoError(t, os.WriteFile(configFile, []byte(tc.contents), 0644))
			}

			got, gotErr := ReadConfig(configFile)
			if tc.wantErr {
				assert.Error(t, gotErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tc.want(dir), got)
		})
	}
}
