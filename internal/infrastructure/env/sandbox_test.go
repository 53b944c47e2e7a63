package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFlatpak(t *testing.T) {
	dir := t.TempDir()
	info := filepath.Join(dir, ".flatpak-info")
	assert.False(t, isFlatpak(info))

	require.NoError(t, os.WriteFile(info, []byte("[Application]\n"), 0o644))
	assert.True(t, isFlatpak(info))
}

func TestParentWindow(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"not-a-number", ""},
		{"0", ""},
		{"27262982", "x11:1a00006"},
		{" 0x1a00006 ", "x11:1a00006"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parentWindow(tt.in))
		})
	}
}

func TestActivationTokenPrefersXDG(t *testing.T) {
	t.Setenv(envStartupID, "startup")
	t.Setenv(envActivationToken, "")
	assert.Equal(t, "startup", ActivationToken())

	t.Setenv(envActivationToken, "xdg")
	assert.Equal(t, "xdg", ActivationToken())
}
