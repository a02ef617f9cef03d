package medicaretest

import (
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := hashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := verifyPassword("password123", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("correct password must verify")
	}

	ok, err = verifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("verify wrong: %v", err)
	}
	if ok {
		t.Error("wrong password must not verify")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if _, err := verifyPassword("x", "not-a-phc-string"); err == nil {
		t.Error("expected error for malformed hash")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := mintToken("u-1", "patient", "secret", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	claims, err := parseToken(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "u-1" || claims.Role != "patient" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := parseToken(token, "other-secret"); err == nil {
		t.Error("wrong secret must not validate")
	}
}
