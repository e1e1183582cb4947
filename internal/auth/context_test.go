package auth

import (
	"context"
	"testing"
)

func TestWithTokenAndToken(t *testing.T) {
	ctx := WithToken(context.Background(), "eyJ.token.value")
	if got := Token(ctx); got != "eyJ.token.value" {
		t.Errorf("Token = %q, want %q", got, "eyJ.token.value")
	}
	if !HasToken(ctx) {
		t.Error("expected HasToken = true")
	}
}

func TestTokenMissing(t *testing.T) {
	if got := Token(context.Background()); got != "" {
		t.Errorf("Token = %q, want empty", got)
	}
	if HasToken(context.Background()) {
		t.Error("expected HasToken = false for empty context")
	}
}

func TestHasTokenEmptyValue(t *testing.T) {
	ctx := WithToken(context.Background(), "")
	if HasToken(ctx) {
		t.Error("expected HasToken = false for empty token value")
	}
}
