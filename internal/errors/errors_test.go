package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := Newf(CodeInvalidSequence, "expected %d, got %d", 3, 5)
	if !stderrors.Is(err, ErrInvalidSequence) {
		t.Fatal("error does not match its sentinel")
	}
	if stderrors.Is(err, ErrDuplicateTarget) {
		t.Fatal("error matches a sentinel with a different code")
	}

	wrapped := fmt.Errorf("handling attack: %w", err)
	if !stderrors.Is(wrapped, ErrInvalidSequence) {
		t.Fatal("fmt-wrapped error lost its code")
	}
	if got := CodeOf(wrapped); got != CodeInvalidSequence {
		t.Fatalf("CodeOf = %s, want %s", got, CodeInvalidSequence)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(CodeTransportFailure, "receive failed", io.EOF)
	if !stderrors.Is(err, io.EOF) {
		t.Fatal("wrapped cause not reachable")
	}
	if got, want := err.Error(), "receive failed: EOF"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !IsFatal(err) {
		t.Fatal("transport failure not fatal")
	}
}

func TestCodeOfForeignError(t *testing.T) {
	if got := CodeOf(io.EOF); got != CodeUnknown {
		t.Fatalf("CodeOf(io.EOF) = %s, want %s", got, CodeUnknown)
	}
	if IsFatal(ErrPrematureMessage) || IsFatal(nil) {
		t.Fatal("non-transport error reported fatal")
	}
}
