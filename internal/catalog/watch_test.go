package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsExternalEdits(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, 20*time.Millisecond) }()
	// 等待监听建立
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"olts": {"Externo": {"description": "", "categories": {}}}}`), 0o644))
	assert.Eventually(t, func() bool {
		names := s.ListVendors()
		return len(names) == 1 && names[0] == "Externo"
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
