package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"k-stock-insight/src/logger"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "detail", err: &ApplicationError{Status: 404, Detail: "종목을 찾을 수 없습니다: 999999"}, want: "종목을 찾을 수 없습니다: 999999"},
		{name: "no detail", err: &ApplicationError{Status: 502}, want: "Request failed with status code 502"},
		{name: "wrapped application", err: fmt.Errorf("stats: %w", &ApplicationError{Status: 500, Detail: "boom"}), want: "boom"},
		{name: "transport", err: NewTransportError(errors.New("dial tcp: connection refused")), want: "dial tcp: connection refused"},
		{name: "plain", err: errors.New("failed to decode /api/stats"), want: "failed to decode /api/stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestTransportErrorUnwraps(t *testing.T) {
	err := NewTransportError(context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("errors.Is(TransportError, DeadlineExceeded) = false")
	}
	if err.Error() != context.DeadlineExceeded.Error() {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewErrorHandler(logger.New(&buf, slog.LevelDebug, "test"))

	if h.Handle(nil, "noop") {
		t.Fatal("Handle(nil) = true")
	}
	if !h.Handle(&ApplicationError{Status: 500, Detail: "boom"}, "refresh all") {
		t.Fatal("Handle(err) = false")
	}
	if h.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d; want 1", h.ErrorCount())
	}
	if !strings.Contains(buf.String(), "Error in refresh all: boom") {
		t.Fatalf("log output = %q", buf.String())
	}

	h.ResetErrorCount()
	if h.ErrorCount() != 0 {
		t.Fatalf("ErrorCount() after reset = %d", h.ErrorCount())
	}
}
