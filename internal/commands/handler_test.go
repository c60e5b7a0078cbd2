package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct {
	Name string
}

func (testMessage) Type() string { return "storefront.test.message" }

func (m testMessage) Validate() error {
	if m.Name == "" {
		return validation.Errors{
			"name": validation.NewError("storefront.test.name_required", "name is required"),
		}
	}
	return nil
}

func TestHandlerExecutesWrappedFunction(t *testing.T) {
	executed := false
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		executed = true
		if msg.Name != "serum" {
			t.Fatalf("unexpected message payload %q", msg.Name)
		}
		return nil
	})

	if err := handler.Execute(context.Background(), testMessage{Name: "serum"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !executed {
		t.Fatal("wrapped function never ran")
	}
}

func TestHandlerRejectsInvalidMessage(t *testing.T) {
	handler := NewHandler(func(context.Context, testMessage) error {
		t.Fatal("exec must not run for invalid messages")
		return nil
	})

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}

	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	boom := errors.New("boom")
	handler := NewHandler(func(context.Context, testMessage) error {
		return boom
	})

	err := handler.Execute(context.Background(), testMessage{Name: "x"})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("wrapped error must preserve the cause, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerHonoursTimeout(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, _ testMessage) error {
		<-ctx.Done()
		return ctx.Err()
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := handler.Execute(context.Background(), testMessage{Name: "x"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHandlerEmitsTelemetry(t *testing.T) {
	var captured TelemetryInfo
	handler := NewHandler(func(context.Context, testMessage) error {
		return nil
	},
		WithOperation[testMessage]("test.run"),
		WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
			captured = info
		}),
	)

	if err := handler.Execute(context.Background(), testMessage{Name: "x"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if captured.Status != TelemetryStatusSuccess {
		t.Fatalf("expected success status, got %q", captured.Status)
	}
	if captured.Command != "storefront.test.message" || captured.Operation != "test.run" {
		t.Fatalf("unexpected telemetry identity: %+v", captured)
	}
}
