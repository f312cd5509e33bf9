package utils

import (
	"strings"
	"testing"
)

func TestPasswordRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"typical staff password", "Ward7!rounds"},
		{"short pin style", "482916"},
		{"unicode passphrase", "咲-sakura-Straße-9"},
		{"max length bcrypt accepts", strings.Repeat("x", 72)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if err != nil {
				t.Fatalf("HashPassword() error = %v", err)
			}
			if !strings.HasPrefix(hash, "$2") {
				t.Errorf("hash %q is not a bcrypt hash", hash)
			}
			if !CheckPassword(tt.password, hash) {
				t.Errorf("CheckPassword rejected its own hash")
			}
			if CheckPassword(tt.password+"!", hash) {
				t.Errorf("CheckPassword accepted a modified password")
			}
		})
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, _ := HashPassword("Ward7!rounds")
	second, _ := HashPassword("Ward7!rounds")

	if first == second {
		t.Error("two hashes of the same password are identical; salt is missing")
	}
	if !CheckPassword("Ward7!rounds", first) || !CheckPassword("Ward7!rounds", second) {
		t.Error("both salted hashes must verify the original password")
	}
}

func TestHashPassword_OverBcryptLimit(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("x", 80)); err == nil {
		t.Error("expected an error for a password beyond bcrypt's 72-byte limit")
	}
}

func TestCheckPassword_MalformedHashes(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"plaintext stored as hash", "Ward7!rounds"},
		{"truncated hash", "$2a$10$abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if CheckPassword("Ward7!rounds", tt.hash) {
				t.Errorf("CheckPassword(%q) = true, expected false", tt.hash)
			}
		})
	}
}

func TestCheckPassword_CaseSensitive(t *testing.T) {
	hash, _ := HashPassword("Ward7!rounds")
	if CheckPassword("ward7!rounds", hash) {
		t.Error("password check must be case sensitive")
	}
}
