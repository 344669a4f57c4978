// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package environ

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		preset  map[string]string
		want    []string
		env     map[string]string
	}{
		{
			name:    "applies variables and trims quotes",
			content: "ENVIRON_TEST_DATA_DIR=\"/srv/catalog\"\nENVIRON_TEST_PORT=9090\n",
			want:    []string{"ENVIRON_TEST_DATA_DIR", "ENVIRON_TEST_PORT"},
			env:     map[string]string{"ENVIRON_TEST_DATA_DIR": "/srv/catalog", "ENVIRON_TEST_PORT": "9090"},
		},
		{
			name:    "existing environment wins",
			content: "ENVIRON_TEST_MODE=debug\nENVIRON_TEST_HOST=0.0.0.0\n",
			preset:  map[string]string{"ENVIRON_TEST_MODE": "release"},
			want:    []string{"ENVIRON_TEST_HOST"},
			env:     map[string]string{"ENVIRON_TEST_MODE": "release", "ENVIRON_TEST_HOST": "0.0.0.0"},
		},
		{
			name:    "comments and blank lines are ignored",
			content: "# settings\n\nENVIRON_TEST_SIZE=25\n",
			want:    []string{"ENVIRON_TEST_SIZE"},
			env:     map[string]string{"ENVIRON_TEST_SIZE": "25"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.preset {
				t.Setenv(k, v)
			}
			for k := range tt.env {
				if _, ok := tt.preset[k]; !ok {
					// Register cleanup, then clear so Load sees it unset.
					t.Setenv(k, "")
					require.NoError(t, os.Unsetenv(k))
				}
			}

			path := filepath.Join(t.TempDir(), ".env")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for k, v := range tt.env {
				assert.Equal(t, v, os.Getenv(k), k)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT VALID LINE WITHOUT EQUALS 'unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
