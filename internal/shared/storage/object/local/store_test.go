package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestPutOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	payload := []byte("%PDF-1.4 fake document body")
	n, err := store.Put(ctx, "documents/u1/abc_report.pdf", "application/pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len(payload)) {
		t.Fatalf("expected %d bytes written, got %d", len(payload), n)
	}

	rc, err := store.Open(ctx, "documents/u1/abc_report.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %q", got)
	}
}

func TestPresignGetReturnsFileURL(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Put(ctx, "documents/u1/x.txt", "text/plain", strings.NewReader("hi")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	url, err := store.PresignGet(ctx, "documents/u1/x.txt", time.Hour)
	if err != nil {
		t.Fatalf("PresignGet: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Fatalf("expected file:// url, got %s", url)
	}
	if !strings.HasSuffix(url, "documents/u1/x.txt") {
		t.Fatalf("expected url to end with key, got %s", url)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Put(ctx, "../escape.txt", "text/plain", strings.NewReader("nope")); err == nil {
		t.Fatal("expected error for traversal key")
	}
	if _, err := store.Open(ctx, "/etc/passwd"); err == nil {
		t.Fatal("expected error for absolute key")
	}
}
