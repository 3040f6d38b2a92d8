package common

import (
	"context"
	"testing"
	"time"
)

func TestShareLinkService_RedeemWithoutRedis(t *testing.T) {
	svc := NewShareLinkService([]byte("test-secret"), nil)

	token, err := svc.GenerateToken("owner-1", "car-1", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	grant, err := svc.RedeemToken(context.Background(), token)
	if err != nil {
		t.Fatalf("redeem without redis failed: %v", err)
	}
	if grant.OwnerID != "owner-1" || grant.CarID != "car-1" {
		t.Errorf("grant = %+v, want owner-1/car-1", grant)
	}
}

func TestShareLinkService_SingleUse(t *testing.T) {
	svc := NewShareLinkService([]byte("test-secret"), nil)

	token, err := svc.GenerateToken("owner-1", "car-1", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := svc.RedeemToken(context.Background(), token); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}
	if _, err := svc.RedeemToken(context.Background(), token); err == nil {
		t.Error("second redemption succeeded, want already-used error")
	}
}

func TestShareLinkService_RejectsForeignSignature(t *testing.T) {
	issuer := NewShareLinkService([]byte("secret-a"), nil)
	verifier := NewShareLinkService([]byte("secret-b"), nil)

	token, err := issuer.GenerateToken("owner-1", "car-1", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := verifier.RedeemToken(context.Background(), token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}
