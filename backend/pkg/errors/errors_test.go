package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_Error(t *testing.T) {
	err := NewBaseError(ErrorTypeGraph, "query failed", nil)
	assert.Equal(t, "[graph] query failed", err.Error())

	wrapped := NewBaseError(ErrorTypeGraph, "query failed", fmt.Errorf("boom"))
	assert.Equal(t, "[graph] query failed: boom", wrapped.Error())
}

func TestTypeOf_EmbeddedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"validation", NewValidationFailed("status", "Invalid friendship status"), ErrorTypeValidation},
		{"rule", NewRuleRejected("self_request", "no"), ErrorTypeRule},
		{"not found", NewNotFound("friendship", "a", "missing"), ErrorTypeNotFound},
		{"graph", NewGraphQueryFailed("initiate", false, fmt.Errorf("x")), ErrorTypeGraph},
		{"config", NewConfigMissingRequired("NEO4J_URI"), ErrorTypeConfig},
		{"context", NewContextCancelled("initiate", context.Canceled), ErrorTypeContext},
		{"wrapped", fmt.Errorf("outer: %w", NewRuleRejected("blocked_by_you", "no")), ErrorTypeRule},
		{"plain", fmt.Errorf("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
		})
	}
}

func TestIsErrorType(t *testing.T) {
	err := fmt.Errorf("respond: %w", NewNotFound("friendship", "a->b", "Friendship request not found"))
	assert.True(t, IsErrorType(err, ErrorTypeNotFound))
	assert.False(t, IsErrorType(err, ErrorTypeGraph))
	assert.False(t, IsErrorType(nil, ErrorTypeNotFound))
}

func TestUnwrap_ReachesCause(t *testing.T) {
	cause := context.DeadlineExceeded
	err := NewContextCancelled("friends", cause)
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))

	var ctxErr *ErrContextCancelled
	assert.True(t, stderrors.As(fmt.Errorf("wrap: %w", err), &ctxErr))
	assert.Equal(t, "friends", ctxErr.Operation)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewGraphQueryFailed("initiate", true, fmt.Errorf("deadlock"))))
	assert.False(t, IsRetryable(NewGraphQueryFailed("initiate", false, fmt.Errorf("syntax"))))
	assert.True(t, IsRetryable(NewGraphConnectionFailed("bolt://localhost:7687", fmt.Errorf("refused"))))
	assert.False(t, IsRetryable(NewRuleRejected("already_friends", "no")))
	assert.False(t, IsRetryable(NewContextCancelled("initiate", context.Canceled)))
}
