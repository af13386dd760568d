package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommandLines(t *testing.T) {
	assert.Equal(t, CommandLines{}, SplitCommandLines("", 3))

	short := SplitCommandLines("show version", 3)
	assert.Equal(t, []string{"show version"}, short.Head)
	assert.Empty(t, short.Tail)
	assert.Equal(t, 1, short.Total)

	long := SplitCommandLines("a\nb\nc\nd\ne\nf\ng", 2)
	assert.Equal(t, []string{"a", "b"}, long.Head)
	assert.Equal(t, []string{"f", "g"}, long.Tail)
	assert.Equal(t, 7, long.Total)

	overlap := SplitCommandLines("a\r\nb\r\nc\r\nd\r\n", 3)
	assert.Equal(t, []string{"a", "b", "c"}, overlap.Head)
	assert.Equal(t, []string{"d"}, overlap.Tail)
}

func TestDebugCommand(t *testing.T) {
	require.NoError(t, Init(Config{Level: "debug", Format: "text", Output: "none"}))
	var buf bytes.Buffer
	SetOutput(&buf)

	DebugCommand("copy", "ZTE C300 Ullyses", "configure terminal\ninterface gpon-olt_1/2/3\nno onu 5\nexit\nexit")
	out := buf.String()
	assert.Contains(t, out, "configure terminal ⟩ interface gpon-olt_1/2/3 ⟩ no onu 5")
	assert.Contains(t, out, "action=copy")

	buf.Reset()
	require.NoError(t, Init(Config{Level: "info", Output: "none"}))
	SetOutput(&buf)
	DebugCommand("copy", "x", "show version")
	assert.Empty(t, buf.String())
}
