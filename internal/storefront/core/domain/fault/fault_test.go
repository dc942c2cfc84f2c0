package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestFromResponseExtractsDetail(t *testing.T) {
	f := FromResponse(422, []byte(`{"detail":"Name required"}`))
	if f.Kind != HTTPStatus {
		t.Fatalf("expected HTTPStatus, got %s", f.Kind)
	}
	if f.Status != 422 {
		t.Fatalf("expected status 422, got %d", f.Status)
	}
	if f.Message != "Name required" {
		t.Fatalf("unexpected message: %q", f.Message)
	}
}

func TestFromResponseFallsBackToStatusMessage(t *testing.T) {
	for _, body := range [][]byte{
		nil,
		[]byte("<html>Internal Server Error</html>"),
		[]byte(`{"error":"boom"}`),
		[]byte(`{"detail":""}`),
	} {
		f := FromResponse(500, body)
		if f.Message != "service responded with HTTP 500" {
			t.Fatalf("body %q: unexpected message %q", body, f.Message)
		}
	}
}

func TestFromNetworkWraps(t *testing.T) {
	cause := errors.New("connection refused")
	f := FromNetwork(cause)
	if f.Kind != Network {
		t.Fatalf("expected Network, got %s", f.Kind)
	}
	if !errors.Is(f, cause) {
		t.Fatalf("expected fault to wrap its cause")
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(FromValidation("cart is empty")); k != Validation {
		t.Fatalf("expected Validation, got %q", k)
	}
	wrapped := fmt.Errorf("workflow: %w", FromResponse(404, nil))
	if k := KindOf(wrapped); k != HTTPStatus {
		t.Fatalf("expected HTTPStatus through wrapping, got %q", k)
	}
	if k := KindOf(errors.New("plain")); k != "" {
		t.Fatalf("expected empty kind for plain error, got %q", k)
	}
}
