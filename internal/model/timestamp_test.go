package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampParsesLegacyLayouts(t *testing.T) {
	for _, s := range []string{
		"2024-05-01T10:20:30.123456",
		"2024-05-01T10:20:30",
		"2024-05-01T10:20:30Z",
		"2024-05-01T10:20:30.5-03:00",
	} {
		ts, err := ParseTimestamp(s)
		require.NoError(t, err, s)
		assert.Equal(t, 2024, ts.Year())
	}
	_, err := ParseTimestamp("01/05/2024")
	assert.Error(t, err)
}

func TestHistoryEntryJSON(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 20, 30, 123456000, time.Local)
	e := HistoryEntry{Command: "show version", OLTModel: "ZTE", Category: "Sistema", Timestamp: NewTimestamp(at)}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"timestamp":"2024-05-01T10:20:30.123456"`)

	var back HistoryEntry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Timestamp.Equal(at))
}

func TestTimestampKeepsUnknownFormat(t *testing.T) {
	var e HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(`{"command": "show version", "timestamp": "2024-05-01 10:00"}`), &e))
	assert.True(t, e.Timestamp.IsZero())
	assert.Equal(t, `"2024-05-01 10:00"`, e.Timestamp.Raw())

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"timestamp":"2024-05-01 10:00"`)

	var f Favorite
	require.NoError(t, json.Unmarshal([]byte(`{"name": "x", "command": "y", "added_on": 1714557600}`), &f))
	data, err = json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"added_on":1714557600`)
}
