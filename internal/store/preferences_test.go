package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oltcmd/oltcmd/internal/model"
)

func TestParseGeometry(t *testing.T) {
	g, ok := ParseGeometry("1200x800+100+100")
	require.True(t, ok)
	assert.Equal(t, Geometry{Width: 1200, Height: 800, X: 100, Y: 100}, g)

	_, ok = ParseGeometry("1200x800")
	assert.False(t, ok)
}

func TestGeometryFits(t *testing.T) {
	screen := Screen{Width: 1920, Height: 1080}
	assert.True(t, Geometry{1200, 800, 100, 100}.Fits(screen))
	assert.False(t, Geometry{50, 800, 100, 100}.Fits(screen))
	assert.False(t, Geometry{1200, 800, 1900, 100}.Fits(screen))
	assert.False(t, Geometry{1200, 800, -5, 100}.Fits(screen))
	assert.True(t, Geometry{4000, 3000, 3000, 2000}.Fits(Screen{}))
}

func TestPreferencesFallbackDefaults(t *testing.T) {
	dir := t.TempDir()
	p := NewPreferences(filepath.Join(dir, "missing.json"), 0, Screen{})
	assert.Equal(t, model.DefaultPreferences(), p.Get())

	bad := filepath.Join(dir, "prefs.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"theme":"neon","window_position":"1x1+0+0","sidebar_position":250}`), 0o644))
	p = NewPreferences(bad, 0, Screen{Width: 1920, Height: 1080})
	got := p.Get()
	assert.Equal(t, model.ThemeLight, got.Theme)
	assert.Equal(t, model.DefaultWindowPosition, got.WindowPosition)
	require.NotNil(t, got.SidebarPosition)
	assert.Equal(t, 250, *got.SidebarPosition)
}

func TestPreferencesDebouncedSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_preferences.json")
	p := NewPreferences(path, 50*time.Millisecond, Screen{})

	p.Update(func(pr *model.Preferences) { pr.Theme = model.ThemeDark })
	p.Update(func(pr *model.Preferences) { pr.WindowPosition = "800x600+10+10" })
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		var saved model.Preferences
		return json.Unmarshal(data, &saved) == nil && saved.Theme == model.ThemeDark && saved.WindowPosition == "800x600+10+10"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPreferencesFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_preferences.json")
	p := NewPreferences(path, time.Hour, Screen{})
	side := 320
	p.Update(func(pr *model.Preferences) { pr.SidebarPosition = &side })
	p.Flush()

	reloaded := NewPreferences(path, 0, Screen{})
	require.NotNil(t, reloaded.Get().SidebarPosition)
	assert.Equal(t, 320, *reloaded.Get().SidebarPosition)
}
