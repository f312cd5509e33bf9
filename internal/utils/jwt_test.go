package utils

import (
	"testing"
	"time"
)

func init() {
	SetJWTSecret("test-secret-key-for-testing")
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(TokenSubject{UserID: 1, Username: "testuser", OrganizationID: 1}, 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}
}

func TestGenerateToken_DifferentTokens(t *testing.T) {
	token1, _ := GenerateToken(TokenSubject{UserID: 1, Username: "user1"}, 24)
	token2, _ := GenerateToken(TokenSubject{UserID: 2, Username: "user2"}, 24)

	if token1 == token2 {
		t.Error("different users should produce different tokens")
	}
}

func TestParseToken(t *testing.T) {
	subject := TokenSubject{
		UserID:         42,
		Username:       "testuser",
		OrganizationID: 7,
		RoleID:         3,
		IsAdmin:        true,
	}

	token, _ := GenerateToken(subject, 24)

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.UserID != subject.UserID {
		t.Errorf("UserID = %d, expected %d", claims.UserID, subject.UserID)
	}
	if claims.Username != subject.Username {
		t.Errorf("Username = %q, expected %q", claims.Username, subject.Username)
	}
	if claims.OrganizationID != subject.OrganizationID {
		t.Errorf("OrganizationID = %d, expected %d", claims.OrganizationID, subject.OrganizationID)
	}
	if claims.RoleID != subject.RoleID {
		t.Errorf("RoleID = %d, expected %d", claims.RoleID, subject.RoleID)
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin not carried through the token")
	}
	if claims.IsSuperadmin {
		t.Error("IsSuperadmin should be false")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		_, err := ParseToken(token)
		if err == nil {
			t.Errorf("ParseToken(%q) should return error", token)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	SetJWTSecret("original-secret")
	token, _ := GenerateToken(TokenSubject{UserID: 1, Username: "user"}, 24)

	SetJWTSecret("different-secret")
	_, err := ParseToken(token)

	SetJWTSecret("test-secret-key-for-testing")

	if err == nil {
		t.Error("ParseToken should fail with wrong secret")
	}
}

func TestGenerateToken_Expiration(t *testing.T) {
	token, _ := GenerateToken(TokenSubject{UserID: 1, Username: "user"}, 1)
	claims, _ := ParseToken(token)

	expiresAt := claims.ExpiresAt.Time
	now := time.Now()

	if expiresAt.Before(now) {
		t.Error("token should not be expired immediately")
	}

	expectedExpiry := now.Add(1 * time.Hour)
	diff := expiresAt.Sub(expectedExpiry)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiration time is off by more than 1 minute: %v", diff)
	}
}

func TestSetJWTSecret(t *testing.T) {
	SetJWTSecret("original")
	token1, _ := GenerateToken(TokenSubject{UserID: 1, Username: "user"}, 24)

	SetJWTSecret("new-secret")
	token2, _ := GenerateToken(TokenSubject{UserID: 1, Username: "user"}, 24)

	SetJWTSecret("test-secret-key-for-testing")

	if token1 == token2 {
		t.Error("tokens generated with different secrets should be different")
	}
}
