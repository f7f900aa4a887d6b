package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetHook("")
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func(string, ...any)
		want string
	}{
		{"debug", Debug, "[DEBUG] loaded 3 keys\n"},
		{"info", Info, "[INFO] loaded 3 keys\n"},
		{"warn", Warn, "[WARN] loaded 3 keys\n"},
		{"error", Error, "[ERROR] loaded 3 keys\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log("loaded %d keys", 3)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestQuietUnlessVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("debug")
	Info("info")
	Warn("warn")
	Section("section")

	assert.Empty(t, buf.String())
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Error("hook %s failed", "install")

	assert.Equal(t, "[ERROR] hook install failed\n", buf.String())
}

func TestSetHook_TagsLines(t *testing.T) {
	buf := capture(t, true)

	SetHook("config-changed")
	Debug("saving")
	SetHook("")
	Debug("done")

	assert.Equal(t, "[DEBUG config-changed] saving\n[DEBUG] done\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("hook install")

	assert.Equal(t, "\n=== hook install ===\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			SetHook("install")
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}
