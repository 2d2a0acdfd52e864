package auth

import (
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// GenerateJWT / ValidateJWT
// ---------------------------------------------------------------------------

func TestGenerateAndValidateJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %s, want alice@example.com", claims.Email)
	}
	if claims.Issuer != "taskhub" {
		t.Errorf("Issuer = %s, want taskhub", claims.Issuer)
	}
}

func TestGenerateJWT_ZeroExpiryDefaults(t *testing.T) {
	token, err := GenerateJWT(1, "a@b.com", 0)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour {
		t.Errorf("default expiry = %s, want ~24h", ttl)
	}
}

func TestValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(1, "a@b.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateJWT_Tampered(t *testing.T) {
	token, err := GenerateJWT(1, "a@b.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	// Flip part of the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %d segments", len(parts))
	}
	parts[2] = "AAAA" + parts[2][4:]
	if _, err := ValidateJWT(strings.Join(parts, ".")); err == nil {
		t.Error("expected error for tampered token")
	}
}

func TestValidateJWT_Garbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ValidateJWT(tok); err == nil {
			t.Errorf("expected error for token %q", tok)
		}
	}
}

// ---------------------------------------------------------------------------
// Password hashing
// ---------------------------------------------------------------------------

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "pw123456" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword("pw123456", hash) {
		t.Error("correct password should verify")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("wrong password must not verify")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (unique salts)")
	}
}
