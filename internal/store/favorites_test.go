package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oltcmd/oltcmd/internal/model"
)

func TestFavoritesRemoveByCommandRemovesAllMatches(t *testing.T) {
	f := NewFavorites(filepath.Join(t.TempDir(), "favorites.json"))
	tpl := "show gpon onu by sn {sn}"
	f.Add(model.Favorite{Name: "Buscar SN", Command: tpl})
	f.Add(model.Favorite{Name: "Buscar SN 2", Command: tpl})
	f.Add(model.Favorite{Name: "Versão", Command: "show version"})

	assert.True(t, f.IsFavorite(tpl))
	assert.Equal(t, 2, f.RemoveByCommand(tpl))
	assert.False(t, f.IsFavorite(tpl))
	assert.Len(t, f.List(), 1)
	assert.Equal(t, 0, f.RemoveByCommand("missing"))
}

func TestFavoritesRemoveByID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	f := NewFavorites(path)
	tpl := "show gpon onu by sn {sn}"
	a := f.Add(model.Favorite{Name: "a", Command: tpl, Params: map[string]string{"sn": "ZTEGC1234567"}})
	b := f.Add(model.Favorite{Name: "b", Command: tpl})
	require.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotNil(t, b.Params)

	assert.True(t, f.RemoveByID(a.ID))
	assert.False(t, f.RemoveByID(a.ID))
	assert.False(t, f.RemoveByID(""))

	reloaded := NewFavorites(path)
	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Name)
}

func TestFavoritesFindAndRecent(t *testing.T) {
	f := NewFavorites(filepath.Join(t.TempDir(), "favorites.json"))
	f.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	f.Add(model.Favorite{Name: "x", Command: "c1"})
	f.Add(model.Favorite{Name: "y", Command: "c2"})
	f.Add(model.Favorite{Name: "x", Command: "c3"})

	assert.Len(t, f.FindByName("x"), 2)
	recent := f.Recent(2)
	assert.Equal(t, []string{"c3", "c2"}, []string{recent[0].Command, recent[1].Command})
	assert.Equal(t, "c1", f.List()[0].Command)
}
