package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPath, "not a directory: %s", "/tmp/nope")
	if err.Code != ErrCodeInvalidPath {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidPath)
	}
	want := "INVALID_PATH: not a directory: /tmp/nope"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrCodeStore, cause, "save project %q", "api")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if got := err.Error(); got != `STORE_ERROR: save project "api": disk full` {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeProjectNotFound, "no such project")
	if !Is(err, ErrCodeProjectNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeNetwork) {
		t.Error("Is should not match plain errors")
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeTimeout, "probe timed out")
	outer := fmt.Errorf("scan failed: %w", inner)
	if !Is(outer, ErrCodeTimeout) {
		t.Error("Is should unwrap the chain to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNetwork, "boom")); got != ErrCodeNetwork {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeNetwork)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidFormat, "unknown format: xml")); got != "unknown format: xml" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
