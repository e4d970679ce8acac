package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "pw1" {
		t.Fatalf("hash must not equal plaintext")
	}

	if !CheckPassword(hash, "pw1") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "pw2") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}
