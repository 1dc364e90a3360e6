package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify_NilAndUnrecognizedErrors(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("not a pg error")))
}

func TestClassify_UnwrapsWrappedDriverErrors(t *testing.T) {
	c := NewPostgresErrorClassifier()

	pgErr := &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
	wrapped := fmt.Errorf("%w: %w", ErrExecutingQuery, pgErr)

	assert.Equal(t, Retryable, c.Classify(wrapped))
}

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		code string
		want ErrorClassification
	}{
		{code: pgerrcode.ConnectionException, want: Retryable},
		{code: pgerrcode.ConnectionFailure, want: Retryable},
		{code: pgerrcode.SerializationFailure, want: Retryable},
		{code: pgerrcode.DeadlockDetected, want: Retryable},
		{code: pgerrcode.CannotConnectNow, want: Retryable},
		{code: pgerrcode.UniqueViolation, want: NonRetryable},
		{code: pgerrcode.NotNullViolation, want: NonRetryable},
		{code: pgerrcode.SyntaxError, want: NonRetryable},
		{code: pgerrcode.UndefinedTable, want: NonRetryable},
		{code: "99999", want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := ClassifyPgError(&pgconn.PgError{Code: tt.code})
			assert.Equal(t, tt.want, got)
		})
	}
}
