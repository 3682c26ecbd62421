package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDeckOutput(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "talk.md", "talk.pdf"},
		{"", "/tmp/slides.markdown", "/tmp/slides.pdf"},
		{"out.pdf", "talk.md", "out.pdf"},
		{"", "", "podium-demo.pdf"},
	}
	for _, tt := range tests {
		if got := deckOutput(tt.output, tt.input); got != tt.want {
			t.Errorf("deckOutput(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRunDeck(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.md")
	md := "# Intro\n\n## Hello\n\n- one\n- two\n\nNotes: say hi\n\n---\n\n## Bye\n"
	if err := os.WriteFile(src, []byte(md), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if err := c.runDeck(context.Background(), src, &deckOpts{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "talk.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestRunDeckMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	err := c.runDeck(context.Background(), filepath.Join(t.TempDir(), "nope.md"), &deckOpts{})
	if err == nil {
		t.Error("missing deck converted")
	}
}
