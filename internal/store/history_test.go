package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oltcmd/oltcmd/internal/model"
)

func fixedClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}

func TestHistoryRecentMostRecentFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "command_history.json")
	h := NewHistory(path)
	h.now = fixedClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local))

	h.Add(model.HistoryEntry{Command: "c1", OLTModel: "ZTE C300 Ullyses", Category: "Geral"})
	h.Add(model.HistoryEntry{Command: "c2", OLTModel: "ZTE C300 Ullyses", Category: "Geral"})

	recent := h.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "c2", recent[0].Command)
	assert.Len(t, h.Recent(0), 2)

	reloaded := NewHistory(path)
	assert.Equal(t, "c2", reloaded.Recent(1)[0].Command)

	h.ClearAll()
	assert.Empty(t, h.Recent(0))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestHistoryTiesKeepLaterInsertFirst(t *testing.T) {
	ts := model.NewTimestamp(time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local))
	items := []model.HistoryEntry{
		{Command: "a", Timestamp: ts},
		{Command: "b", Timestamp: ts},
		{Command: "old", Timestamp: model.NewTimestamp(ts.Add(-time.Hour))},
	}
	out := SortHistory(items, 0)
	assert.Equal(t, []string{"b", "a", "old"}, []string{out[0].Command, out[1].Command, out[2].Command})
}

func TestHistoryCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "command_history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	h := NewHistory(path)
	assert.Empty(t, h.Recent(0))
}

func TestHistoryReadsLegacyTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "command_history.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"command": "show version", "olt_model": "ZTE Z600 Itaum", "category": "Sistema > Informações Gerais", "timestamp": "2024-03-01T08:15:30.123456"},
  {"command": "show alarm active", "olt_model": "ZTE C300 Ullyses", "category": "Diagnóstico", "timestamp": "2024-03-02T08:15:30.000001"}
]`), 0o644))
	h := NewHistory(path)
	recent := h.Recent(DefaultRecentLimit)
	require.Len(t, recent, 2)
	assert.Equal(t, "show alarm active", recent[0].Command)
}

func TestHistoryKeepsEntriesWithUnknownTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "command_history.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"command": "show version", "olt_model": "ZTE Z600 Itaum", "category": "Sistema", "timestamp": "2024-05-01 10:00"},
  {"command": "show alarm active", "olt_model": "ZTE C300 Ullyses", "category": "Diagnóstico", "timestamp": "2024-03-02T08:15:30.000001"}
]`), 0o644))
	h := NewHistory(path)
	require.Len(t, h.Recent(0), 2)

	h.Add(model.HistoryEntry{Command: "display version", OLTModel: "Huawei MA5800 Araquari"})
	recent := h.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "show version", recent[2].Command)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"timestamp": "2024-05-01 10:00"`)
	assert.Contains(t, string(data), "show alarm active")
}

func TestHistoryWriteErrorsAreSwallowed(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	h := NewHistory(filepath.Join(blocker, "history.json"))
	assert.NotPanics(t, func() { h.Add(model.HistoryEntry{Command: "x"}) })
	assert.Len(t, h.Recent(0), 1)
}
