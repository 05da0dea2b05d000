package ext_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/debounce/ext"
)

// ──────────────────────────────────────────────────
// Test extensions
// ──────────────────────────────────────────────────

// allHooksExt implements every lifecycle hook for testing.
type allHooksExt struct {
	calls []string
}

func (e *allHooksExt) Name() string { return "all-hooks" }

func (e *allHooksExt) OnEntryUpserted(_ context.Context, _ string, _ int, _ time.Time) error {
	e.calls = append(e.calls, "OnEntryUpserted")
	return nil
}

func (e *allHooksExt) OnEntryDebounced(_ context.Context, _ string, _ int, _ time.Time) error {
	e.calls = append(e.calls, "OnEntryDebounced")
	return nil
}

func (e *allHooksExt) OnEntryRemoved(_ context.Context, _ string) error {
	e.calls = append(e.calls, "OnEntryRemoved")
	return nil
}

func (e *allHooksExt) OnEntryExpired(_ context.Context, _ string, _ int) error {
	e.calls = append(e.calls, "OnEntryExpired")
	return nil
}

func (e *allHooksExt) OnCanceled(_ context.Context) error {
	e.calls = append(e.calls, "OnCanceled")
	return nil
}

// expiredOnlyExt only implements the expiration hook.
type expiredOnlyExt struct {
	calls []string
}

func (e *expiredOnlyExt) Name() string { return "expired-only" }

func (e *expiredOnlyExt) OnEntryExpired(_ context.Context, _ string, _ int) error {
	e.calls = append(e.calls, "OnEntryExpired")
	return nil
}

// failingExt returns errors from hooks.
type failingExt struct{}

func (e *failingExt) Name() string { return "failing" }

func (e *failingExt) OnEntryUpserted(_ context.Context, _ string, _ int, _ time.Time) error {
	return errors.New("boom")
}

func (e *failingExt) OnCanceled(_ context.Context) error {
	return errors.New("cancel boom")
}

// ──────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────

func TestRegistry_RegisterDiscoversInterfaces(t *testing.T) {
	r := ext.NewRegistry[string, int](slog.Default())
	all := &allHooksExt{}
	r.Register(all)

	ctx := context.Background()
	deadline := time.Now().Add(time.Second)

	r.EmitEntryUpserted(ctx, "a", 1, deadline)
	r.EmitEntryDebounced(ctx, "a", 2, deadline)
	r.EmitEntryRemoved(ctx, "a")
	r.EmitEntryExpired(ctx, "a", 2)
	r.EmitCanceled(ctx)

	want := []string{
		"OnEntryUpserted",
		"OnEntryDebounced",
		"OnEntryRemoved",
		"OnEntryExpired",
		"OnCanceled",
	}
	if len(all.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d: %v", len(want), len(all.calls), all.calls)
	}
	for i, name := range want {
		if all.calls[i] != name {
			t.Errorf("call %d: expected %q, got %q", i, name, all.calls[i])
		}
	}
}

func TestRegistry_PartialHooks(t *testing.T) {
	r := ext.NewRegistry[string, int](slog.Default())
	e := &expiredOnlyExt{}
	r.Register(e)

	ctx := context.Background()
	r.EmitEntryUpserted(ctx, "a", 1, time.Now())
	r.EmitEntryRemoved(ctx, "a")
	r.EmitCanceled(ctx)

	if len(e.calls) != 0 {
		t.Fatalf("expected no calls for unimplemented hooks, got %v", e.calls)
	}

	r.EmitEntryExpired(ctx, "a", 1)
	if len(e.calls) != 1 || e.calls[0] != "OnEntryExpired" {
		t.Fatalf("expected single OnEntryExpired call, got %v", e.calls)
	}
}

func TestRegistry_MultipleExtensionsInOrder(t *testing.T) {
	r := ext.NewRegistry[string, int](slog.Default())
	first := &allHooksExt{}
	second := &expiredOnlyExt{}
	r.Register(first)
	r.Register(second)

	if got := len(r.Extensions()); got != 2 {
		t.Fatalf("expected 2 registered extensions, got %d", got)
	}

	r.EmitEntryExpired(context.Background(), "k", 7)
	if len(first.calls) != 1 {
		t.Errorf("first extension not notified: %v", first.calls)
	}
	if len(second.calls) != 1 {
		t.Errorf("second extension not notified: %v", second.calls)
	}
}

func TestRegistry_HookErrorsDoNotPropagate(t *testing.T) {
	r := ext.NewRegistry[string, int](slog.Default())
	r.Register(&failingExt{})
	after := &allHooksExt{}
	r.Register(after)

	// Emitting must neither panic nor stop fan-out.
	ctx := context.Background()
	r.EmitEntryUpserted(ctx, "a", 1, time.Now())
	r.EmitCanceled(ctx)

	if len(after.calls) != 2 {
		t.Fatalf("extension after failing one was not notified: %v", after.calls)
	}
}

func TestRegistry_NilLoggerDefaults(t *testing.T) {
	r := ext.NewRegistry[string, int](nil)
	r.Register(&failingExt{})

	// Must not panic when logging a hook error without an explicit logger.
	r.EmitEntryUpserted(context.Background(), "a", 1, time.Now())
}
