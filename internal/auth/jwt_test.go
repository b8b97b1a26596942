package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	j := NewJWT("test-secret", 30*time.Minute, 7*24*time.Hour)

	tests := []struct {
		name     string
		issue    func(string) (string, error)
		wantType string
	}{
		{"access", j.GenerateAccessToken, TokenAccess},
		{"refresh", j.GenerateRefreshToken, TokenRefresh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.issue("alice@corp.test")
			if err != nil {
				t.Fatalf("issue: %v", err)
			}

			claims, err := j.VerifyToken(token)
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if claims.Subject != "alice@corp.test" {
				t.Fatalf("expected subject alice@corp.test, got %q", claims.Subject)
			}
			if claims.TokenType != tt.wantType {
				t.Fatalf("expected token type %q, got %q", tt.wantType, claims.TokenType)
			}
		})
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	issuer := NewJWT("key-one", 30*time.Minute, 7*24*time.Hour)
	verifier := NewJWT("key-two", 30*time.Minute, 7*24*time.Hour)

	token, err := issuer.GenerateAccessToken("alice@corp.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	j := NewJWT("test-secret", -time.Minute, -time.Minute)

	token, err := j.GenerateAccessToken("alice@corp.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := j.VerifyToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	j := NewJWT("test-secret", 30*time.Minute, 7*24*time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := j.VerifyToken(token); err != ErrInvalidToken {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
