package logging

import (
	"context"
	"testing"
)

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-123"

	ctx = WithRequestID(ctx, requestID)
	got := GetRequestID(ctx)

	if got != requestID {
		t.Errorf("GetRequestID() = %q, want %q", got, requestID)
	}
}

func TestWithUnitID(t *testing.T) {
	ctx := context.Background()
	unitID := "test-unit-456"

	ctx = WithUnitID(ctx, unitID)
	got := GetUnitID(ctx)

	if got != unitID {
		t.Errorf("GetUnitID() = %q, want %q", got, unitID)
	}
}

func TestGetRequestID_NotPresent(t *testing.T) {
	ctx := context.Background()
	got := GetRequestID(ctx)

	if got != "" {
		t.Errorf("GetRequestID() = %q, want empty string", got)
	}
}

func TestGetUnitID_NotPresent(t *testing.T) {
	ctx := context.Background()
	got := GetUnitID(ctx)

	if got != "" {
		t.Errorf("GetUnitID() = %q, want empty string", got)
	}
}

func TestBothIDs(t *testing.T) {
	ctx := context.Background()
	requestID := "req-1"
	unitID := "unit-1"

	ctx = WithRequestID(ctx, requestID)
	ctx = WithUnitID(ctx, unitID)

	if got := GetRequestID(ctx); got != requestID {
		t.Errorf("GetRequestID() = %q, want %q", got, requestID)
	}

	if got := GetUnitID(ctx); got != unitID {
		t.Errorf("GetUnitID() = %q, want %q", got, unitID)
	}
}
