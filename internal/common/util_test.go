package common

import (
	"encoding/base64"
	"testing"
)

func TestMakeRandBase64String_LengthAndAlphabet(t *testing.T) {
	const n = 64
	s, err := MakeRandBase64String(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := base64.RawURLEncoding.EncodedLen(n); len(s) != want {
		t.Fatalf("expected encoded length %d, got %d", want, len(s))
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("string is not valid base64url: %v", err)
	}
	if len(raw) != n {
		t.Fatalf("expected %d decoded bytes, got %d", n, len(raw))
	}
}

func TestMakeRandBase64String_ZeroSize(t *testing.T) {
	s, err := MakeRandBase64String(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandBase64String_EntropyHint(t *testing.T) {
	const n = 64
	a, err := MakeRandBase64String(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandBase64String(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two random tokens should not collide")
	}
}
