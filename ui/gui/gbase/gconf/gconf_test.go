package gconf

import (
	"os"
	"path/filepath"
	"testing"

	"blockblast/src/base"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	c, err := NewGUIConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig().Theme, c.Theme)
	assert.Equal(t, base.Classic, c.GameMode())
	assert.Equal(t, path, c.Path())
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	c, err := NewGUIConfig(path)
	require.NoError(t, err)
	c.Theme = "light"
	c.Mode = "chaos"
	c.HintLevel = 3
	require.NoError(t, c.Save())

	got, err := NewGUIConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, base.Chaos, got.GameMode())
	assert.Equal(t, 3, got.HintLevel)
}

func TestCorrection(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	raw := `{"theme":"neon","mode":"blitz","hint_level":9,"window_w":10,"window_h":10}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	c, err := NewGUIConfig(path)
	require.NoError(t, err)
	def := defaultConfig()
	assert.Equal(t, def.Theme, c.Theme)
	assert.Equal(t, def.Mode, c.Mode)
	assert.Equal(t, def.HintLevel, c.HintLevel)
	assert.Equal(t, def.WindowW, c.WindowW)
	assert.Equal(t, def.WindowH, c.WindowH)
}

func TestDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := NewGUIConfig(path)
	assert.Error(t, err)
}
