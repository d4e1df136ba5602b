package passwords

import "testing"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	digest, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "s3cret" {
		t.Fatal("digest must not equal the plaintext")
	}
	if !h.Verify("s3cret", digest) {
		t.Fatal("Verify should accept the original password")
	}
}

func TestBcryptHasher_WrongPassword(t *testing.T) {
	h := NewBcryptHasher()

	digest, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h.Verify("wrong", digest) {
		t.Fatal("Verify should reject a wrong password")
	}
}

func TestBcryptHasher_SaltedDigestsDiffer(t *testing.T) {
	h := NewBcryptHasher()

	a, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatal("two digests of the same password should differ")
	}
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := NewBcryptHasher()
	if h.Verify("anything", "not-a-bcrypt-digest") {
		t.Fatal("Verify should reject a malformed digest")
	}
}
