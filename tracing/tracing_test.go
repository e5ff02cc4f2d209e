package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")

	if err := Init("mapscript", "0.0.1", fname); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	_, span := StartSpan(context.Background(), "run test")
	span.WithAttributes(map[string]string{"directive": "load-source"})
	span.SetStatus(nil)
	span.End()

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("no data written to trace file")
	}
}

func TestSpanNilSafe(t *testing.T) {
	var span *Span
	span.WithAttributes(map[string]string{"k": "v"})
	span.SetStatus(nil)
	span.End()
}
