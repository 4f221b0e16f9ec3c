package s3

import (
	"io"
	"strings"
	"testing"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "documents/u1/file.pdf", want: "documents/u1/file.pdf"},
		{name: "simple prefix", prefix: "root", key: "documents/u1/file.pdf", want: "root/documents/u1/file.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "documents/u1/file.pdf", want: "root/documents/u1/file.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/documents/u1/file.pdf", want: "root/documents/u1/file.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "documents/u1/file.pdf", want: "root/sub/documents/u1/file.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestCountingReader(t *testing.T) {
	t.Parallel()

	payload := "a staged document body"
	counter := &countingReader{r: strings.NewReader(payload)}
	if _, err := io.ReadAll(counter); err != nil {
		t.Fatalf("read: %v", err)
	}
	if counter.n != int64(len(payload)) {
		t.Fatalf("counted %d bytes, want %d", counter.n, len(payload))
	}
}
