package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("secret", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hashed == "secret" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword("secret", hashed) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword("wrong", hashed) {
		t.Fatal("expected mismatched password to fail verification")
	}
}

func TestHashPassword_Randomized(t *testing.T) {
	t.Parallel()

	// bcrypt salts every hash, so two hashes of the same input differ.
	h1, err := HashPassword("secret", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("expected distinct hashes for the same plaintext")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("secret", "not-a-bcrypt-hash") {
		t.Fatal("expected malformed hash to fail verification, not panic")
	}
}

func TestHashPassword_InvalidCost(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword("secret", 100); err == nil {
		t.Fatal("expected error for out-of-range cost")
	}
}
