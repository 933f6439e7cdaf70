package auth

import "testing"

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if digest == "correct horse battery staple" {
		t.Fatal("digest equals plaintext")
	}
	if !VerifyPassword("correct horse battery staple", digest) {
		t.Error("expected verify to succeed for the hashed password")
	}
	if VerifyPassword("wrong password", digest) {
		t.Error("expected verify to fail for a different password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("expected distinct digests for the same password (per-call salt)")
	}
	if !VerifyPassword("pw123456", first) || !VerifyPassword("pw123456", second) {
		t.Error("both digests must verify the original password")
	}
}
