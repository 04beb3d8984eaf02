package mirror

import (
	"errors"
	"strings"
	"testing"
)

func TestEngineErrorUnwrapsToSentinel(t *testing.T) {
	err := errUnknownType("Widget")
	if !errors.Is(err, ErrUnknownType) {
		t.Error("errUnknownType() should unwrap to ErrUnknownType")
	}
	if errors.Is(err, ErrTypeMismatch) {
		t.Error("errUnknownType() should not match ErrTypeMismatch")
	}
}

func TestEngineErrorUnwrapsToCauseWhenPresent(t *testing.T) {
	cause := errors.New("constructor panicked")
	err := errCannotInstantiate("Widget", cause)
	if !errors.Is(err, cause) {
		t.Error("errCannotInstantiate() should unwrap to its cause")
	}
	if !errors.Is(err, ErrCannotInstantiate) {
		t.Error("errCannotInstantiate() should also match the sentinel via Error()/Kind")
	}
}

func TestEngineErrorMessageIncludesContext(t *testing.T) {
	err := errDepthExceeded("Widget", 42)
	ee, ok := err.(*EngineError)
	if !ok {
		t.Fatalf("errDepthExceeded() returned %T, want *EngineError", err)
	}
	if ee.Kind != KindDepthExceeded {
		t.Errorf("Kind = %v, want %v", ee.Kind, KindDepthExceeded)
	}
	msg := ee.Error()
	if !strings.Contains(msg, "Widget") || !strings.Contains(msg, "42") {
		t.Errorf("Error() = %q, want it to mention type and depth", msg)
	}
}
