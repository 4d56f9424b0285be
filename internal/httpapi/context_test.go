package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"
)

func TestJoinContextsCancelsOnEither(t *testing.T) {
	a, cancelA := context.WithCancel(context.Background())
	b := context.Background()
	joined, cancel := joinContexts(a, b)
	defer cancel()

	select {
	case <-joined.Done():
		t.Fatalf("joined done too early")
	default:
	}

	cancelA()
	select {
	case <-joined.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined not canceled after a")
	}
}

func TestRequestContextFollowsBase(t *testing.T) {
	base, cancelBase := context.WithCancel(context.Background())
	SetBaseContext(base)
	defer SetBaseContext(nil)

	r := httptest.NewRequest("GET", "/x", nil)
	ctx, cancel := requestContext(r)
	defer cancel()

	cancelBase()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("request context not canceled with base")
	}
}

func TestRequestContextTimeout(t *testing.T) {
	SetRequestTimeoutSeconds(1)
	defer SetRequestTimeoutSeconds(0)

	r := httptest.NewRequest("GET", "/x", nil)
	ctx, cancel := requestContext(r)
	defer cancel()

	if _, ok := ctx.Deadline(); !ok {
		t.Fatalf("expected a deadline")
	}
}
