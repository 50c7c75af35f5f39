//go:build unix

package utrace

import (
	"os"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestTraceSignalToggles(t *testing.T) {
	dir := t.TempDir()
	tr := NewTraceLog(
		WithTraceDir(dir),
		WithTraceDiagnostics(testDiagnostics(t)),
		WithTraceLogger(NopLogger()),
		WithEnvLookup(envMap(map[string]string{EnvTraceSignal: "0"})),
		WithWriterID(func() uint64 { return 7 }),
	)
	t.Cleanup(func() { _ = tr.Close() })

	if tr.ActiveFor(0) {
		t.Fatalf("armed log must start inactive")
	}
	if err := unix.Kill(os.Getpid(), unix.SIGUSR2); err != nil {
		t.Fatalf("kill: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for !tr.toggleRequested.Load() {
		if time.Now().After(deadline) {
			t.Fatalf("toggle signal was not observed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if st := tr.State(); st != TraceDisabled {
		t.Fatalf("the handler must not change state by itself, got %v", st)
	}
	if !tr.ActiveFor(0) {
		t.Fatalf("signal should enable capture on the next check")
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if tr.watcher != nil {
		t.Fatalf("close should stop the signal watcher")
	}
}
