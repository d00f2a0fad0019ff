package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/keypress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Editor.LineHeight)
	assert.Equal(t, 13, cfg.Editor.FontSize)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, 2*time.Second, cfg.CacheTTL)
	assert.Empty(t, cfg.Keymaps)
}

func TestLoadFrom_File(t *testing.T) {
	dir := writeConfig(t, `
editor:
  line_height: 24
theme: light
watch_debounce: 250ms
keymaps:
  - key: "ctrl+j"
    command: list.next
    when: list_focus
    mode: n
`)
	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Editor.LineHeight)
	assert.Equal(t, 24.0, cfg.LineHeight())
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 250*time.Millisecond, cfg.WatchDebounce)
	require.Len(t, cfg.Keymaps, 1)

	maps, err := cfg.KeyMaps()
	require.NoError(t, err)
	last := maps[len(maps)-1]
	assert.Equal(t, []string{"ctrl+j"}, last.Keys)
	assert.Equal(t, command.ListNext, last.Command)
	assert.Equal(t, []keypress.Mode{keypress.ModeNormal}, last.Modes)
	assert.Equal(t, "list_focus", last.When)
}

func TestLoadFrom_InvalidLineHeight(t *testing.T) {
	dir := writeConfig(t, "editor:\n  line_height: 8\n")

	_, err := LoadFrom(dir)
	assert.ErrorIs(t, err, ErrInvalidLineHeight)
}

func TestKeyMaps_UnknownCommand(t *testing.T) {
	cfg := Default()
	cfg.Keymaps = []KeymapConfig{{Key: "x", Command: "explode"}}

	_, err := cfg.KeyMaps()
	assert.ErrorContains(t, err, "keymaps[0]")
}

func TestKeyMaps_DefaultsFirst(t *testing.T) {
	maps, err := Default().KeyMaps()
	require.NoError(t, err)
	assert.Equal(t, len(keypress.DefaultKeyMaps()), len(maps))
}
