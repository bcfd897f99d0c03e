package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dalemusser/standin/internal/app/system/apperr"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"not found", apperr.NotFound("request", "request not found"), apperr.KindNotFound},
		{"conflict", apperr.Conflict("already responded to"), apperr.KindConflict},
		{"forbidden", apperr.Forbidden("not yours"), apperr.KindForbidden},
		{"validation", apperr.Validation("bad id"), apperr.KindValidation},
		{"wrapped", fmt.Errorf("outer: %w", apperr.Conflict("inner")), apperr.KindConflict},
		{"untyped", errors.New("boom"), apperr.KindInternal},
		{"internal wrap", apperr.Internal("store failed", errors.New("io")), apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageOf_NeverLeaksInternals(t *testing.T) {
	err := apperr.Internal("store failed", errors.New("connection string mongodb://secret"))
	if got := apperr.MessageOf(err); got != "internal error" {
		t.Errorf("MessageOf internal: got %q", got)
	}
	if got := apperr.MessageOf(errors.New("raw driver error")); got != "internal error" {
		t.Errorf("MessageOf untyped: got %q", got)
	}
	if got := apperr.MessageOf(apperr.Forbidden("only the targeted proxy may accept")); got != "only the targeted proxy may accept" {
		t.Errorf("MessageOf typed: got %q", got)
	}
}

func TestIs_MatchesOnKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", apperr.NotFound("proxy availability", "not available"))
	if !errors.Is(err, &apperr.Error{Kind: apperr.KindNotFound}) {
		t.Error("expected kind match")
	}
	if errors.Is(err, &apperr.Error{Kind: apperr.KindConflict}) {
		t.Error("unexpected kind match")
	}
	if !errors.Is(err, &apperr.Error{Kind: apperr.KindNotFound, Resource: "proxy availability"}) {
		t.Error("expected resource match")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("io timeout")
	err := apperr.Internal("store failed", cause)
	if !errors.Is(err, cause) {
		t.Error("expected cause to unwrap")
	}
}
