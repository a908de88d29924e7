package cli

import (
	"bytes"
	"context"
	"testing"
)

func TestSpinnerSilentWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Fetching...")
	s.Start()
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal writer", buf.String())
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true without cancellation")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Fetching...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent cancellation")
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "x")
	s.Start()
	s.Stop()
	s.Stop()
}
