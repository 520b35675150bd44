package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/zhivlux/storefront/pkg/ctxmeta"
)

func TestWithRequestID_AndBack(t *testing.T) {
	t.Parallel()

	ctx := ctxmeta.WithRequestID(context.Background(), "req-1")
	got, ok := ctxmeta.RequestIDFromContext(ctx)
	if !ok || got != "req-1" {
		t.Fatalf("want req-1, got %q ok=%v", got, ok)
	}
}

func TestWithRequestID_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	ctx := ctxmeta.WithRequestID(context.Background(), "")
	if _, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		t.Fatalf("empty request id must not be stored")
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	t.Parallel()

	if _, ok := ctxmeta.RequestIDFromContext(context.Background()); ok {
		t.Fatalf("missing request id must report ok=false")
	}
}
