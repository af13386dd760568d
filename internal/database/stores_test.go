package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oltcmd/oltcmd/internal/config"
	"github.com/oltcmd/oltcmd/internal/model"
)

func openTestDB(t *testing.T) *HistoryStore {
	t.Helper()
	conn, err := InitSQLite(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "oltcmd.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close() })
	require.NoError(t, Health())
	return NewHistoryStore(conn)
}

func TestHistoryStore(t *testing.T) {
	h := openTestDB(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	h.Add(model.HistoryEntry{Command: "c1", Timestamp: model.NewTimestamp(base)})
	h.Add(model.HistoryEntry{Command: "c2", Timestamp: model.NewTimestamp(base)})
	h.Add(model.HistoryEntry{Command: "c0", Timestamp: model.NewTimestamp(base.Add(-time.Minute))})

	recent := h.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"c2", "c1", "c0"}, []string{recent[0].Command, recent[1].Command, recent[2].Command})
	assert.Len(t, h.Recent(1), 1)

	h.ClearAll()
	assert.Empty(t, h.Recent(0))
}

func TestFavoriteStore(t *testing.T) {
	h := openTestDB(t)
	f := NewFavoriteStore(h.db)
	tpl := "show gpon onu by sn {sn}"
	a := f.Add(model.Favorite{Name: "a", Command: tpl, Params: map[string]string{"sn": "ZTEGC1234567"}})
	f.Add(model.Favorite{Name: "b", Command: tpl})
	f.Add(model.Favorite{Name: "a", Command: "show version"})

	list := f.List()
	require.Len(t, list, 3)
	assert.Equal(t, "ZTEGC1234567", list[0].Params["sn"])
	assert.Len(t, f.FindByName("a"), 2)
	assert.True(t, f.IsFavorite(tpl))

	assert.True(t, f.RemoveByID(a.ID))
	assert.Equal(t, 1, f.RemoveByCommand(tpl))
	assert.False(t, f.IsFavorite(tpl))
	assert.Len(t, f.Recent(10), 1)
}
