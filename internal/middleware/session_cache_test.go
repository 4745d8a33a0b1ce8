package middleware_test

import (
	"context"
	"testing"
	"time"

	"github.com/hfappmaker/worktime/internal/middleware"
	"github.com/hfappmaker/worktime/internal/models"
)

func TestCachedSessionLookup_HitSkipsInner(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inner := &mockSessionLookup{validTokens: map[string]*models.User{
		"tok": {ID: "u1", Name: "Jordan"},
	}}
	cached := middleware.NewCachedSessionLookup(ctx, inner, time.Minute, 10)

	for i := 0; i < 3; i++ {
		u, err := cached.GetUserBySessionToken(ctx, "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.ID != "u1" {
			t.Fatalf("unexpected user: %+v", u)
		}
	}

	if inner.calls != 1 {
		t.Errorf("expected one inner lookup, got %d", inner.calls)
	}
}

func TestCachedSessionLookup_NegativeHit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inner := &mockSessionLookup{}
	cached := middleware.NewCachedSessionLookup(ctx, inner, time.Minute, 10)

	for i := 0; i < 3; i++ {
		if _, err := cached.GetUserBySessionToken(ctx, "bad"); err == nil {
			t.Fatal("expected lookup failure")
		}
	}

	if inner.calls != 1 {
		t.Errorf("expected the failure cached after one inner lookup, got %d", inner.calls)
	}
}

func TestCachedSessionLookup_ReturnsCopy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inner := &mockSessionLookup{validTokens: map[string]*models.User{
		"tok": {ID: "u1", Name: "Jordan"},
	}}
	cached := middleware.NewCachedSessionLookup(ctx, inner, time.Minute, 10)

	first, err := cached.GetUserBySessionToken(ctx, "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Name = "mutated"

	second, err := cached.GetUserBySessionToken(ctx, "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Name != "Jordan" {
		t.Errorf("cache entry must not be aliased by callers, got %q", second.Name)
	}
}

func TestCachedSessionLookup_BoundedSize(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inner := &mockSessionLookup{validTokens: map[string]*models.User{}}
	for _, tok := range []string{"a", "b", "c", "d"} {
		inner.validTokens[tok] = &models.User{ID: "u-" + tok}
	}
	cached := middleware.NewCachedSessionLookup(ctx, inner, time.Minute, 2)

	for _, tok := range []string{"a", "b", "c", "d"} {
		if _, err := cached.GetUserBySessionToken(ctx, tok); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// All four lookups hit the inner store; the bound only caps memory.
	if inner.calls != 4 {
		t.Errorf("expected 4 inner lookups, got %d", inner.calls)
	}
}
