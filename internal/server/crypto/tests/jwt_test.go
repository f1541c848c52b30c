package tests

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/crypto"
)

func testJWTConfig() crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     "fintrack",
		Audience:   "fintrack-api",
		SigningKey: "test-signing-key-0123456789-abcdef",
		AccessTTL:  7 * 24 * time.Hour,
	}
}

func TestNewAccessToken_Claims(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New().String()

	tokenStr, err := crypto.NewAccessToken(userID, cfg)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if claims.Subject != userID {
		t.Fatalf("expected sub %q, got %q", userID, claims.Subject)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected iss %q, got %q", cfg.Issuer, claims.Issuer)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected exp and iat to be set")
	}

	// exp ~= iat + TTL (7 дней)
	gotTTL := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if gotTTL != cfg.AccessTTL {
		t.Fatalf("expected TTL %v, got %v", cfg.AccessTTL, gotTTL)
	}
}

func TestNewAccessToken_WrongKeyFails(t *testing.T) {
	cfg := testJWTConfig()

	tokenStr, err := crypto.NewAccessToken(uuid.New().String(), cfg)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (any, error) {
		return []byte("another-signing-key-0123456789-ab"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err == nil {
		t.Fatalf("expected signature validation to fail with wrong key")
	}
}

func TestNewAccessToken_ExpiredFailsValidation(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTTL = -time.Minute

	tokenStr, err := crypto.NewAccessToken(uuid.New().String(), cfg)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err == nil {
		t.Fatalf("expected expired token to fail validation")
	}
}
