//go:build unix

package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// stalledBackground creates a FIFO with no writer: opening it for reading
// blocks until someone opens the other end.
func stalledBackground(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bg.png")
	require.NoError(t, syscall.Mkfifo(path, 0o644))
	t.Cleanup(func() {
		// release the blocked reader so the decode goroutine exits
		if f, err := os.OpenFile(path, os.O_RDWR, 0); err == nil {
			_ = f.Close()
		}
	})
	return path
}

func TestExportSkipsBackgroundOnTimeout(t *testing.T) {
	bg := stalledBackground(t)
	out := filepath.Join(t.TempDir(), "out")
	core, logs := observer.New(zap.WarnLevel)
	e := &Exporter{Dir: out, Scale: 1, Background: bg, ImageTimeout: 100 * time.Millisecond, Logger: zap.New(core)}

	start := time.Now()
	res, err := e.Export(context.Background(), sampleRecord(), station)
	require.NoError(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
	require.False(t, res.Background)
	require.Equal(t, filepath.Join(out, "QSL_W1AW_2024.png"), res.ImagePath)
	require.FileExists(t, res.ImagePath)
	require.Equal(t, 1, logs.FilterMessage("background skipped").Len())
}

func TestLoadBackgroundTimesOut(t *testing.T) {
	bg := stalledBackground(t)

	img, err := LoadBackground(context.Background(), bg, 50*time.Millisecond)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	require.Nil(t, img)
}

func TestLoadBackgroundCancelled(t *testing.T) {
	bg := stalledBackground(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, err := LoadBackground(ctx, bg, time.Minute)
	require.True(t, errors.Is(err, context.Canceled))
	require.Nil(t, img)
}
