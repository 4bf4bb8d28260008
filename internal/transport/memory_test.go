package transport

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestPipeDeliversInOrder(t *testing.T) {
	a, b := NewPipe("alice", "bob")
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := a.Send(ctx, []byte(fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatalf("Send %d failed: %v", i, err)
		}
	}

	for i := 0; i < 10; i++ {
		from, data, err := b.Receive(ctx)
		if err != nil {
			t.Fatalf("Receive %d failed: %v", i, err)
		}
		if from != "alice" {
			t.Fatalf("message %d from %q, want alice", i, from)
		}
		if want := fmt.Sprintf("msg-%d", i); string(data) != want {
			t.Fatalf("got %q, want %q", data, want)
		}
	}
}

func TestPipeCopiesPayload(t *testing.T) {
	a, b := NewPipe("a", "b")
	buf := []byte("attack")
	if err := a.Send(context.Background(), buf); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	buf[0] = 'X'

	_, data, err := b.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if string(data) != "attack" {
		t.Fatalf("payload changed after send: %q", data)
	}
}

func TestPipeClose(t *testing.T) {
	a, b := NewPipe("a", "b")
	if err := a.Send(context.Background(), []byte("last")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	a.Close()
	a.Close()

	// Queued messages drain before the close is reported.
	if _, data, err := b.Receive(context.Background()); err != nil || string(data) != "last" {
		t.Fatalf("queued message lost: %q %v", data, err)
	}
	if _, _, err := b.Receive(context.Background()); !errors.Is(err, errClosed) {
		t.Fatalf("expected errClosed, got %v", err)
	}
	if err := b.Send(context.Background(), []byte("x")); !errors.Is(err, errClosed) {
		t.Fatalf("Send after close: expected errClosed, got %v", err)
	}
	select {
	case <-b.Done():
	default:
		t.Fatal("Done not closed on the other end")
	}
}

func TestPipeReceiveHonoursContext(t *testing.T) {
	_, b := NewPipe("a", "b")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, _, err := b.Receive(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}
