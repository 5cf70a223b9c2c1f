package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "domain error passes through",
			err:        NewConflict("already matched", nil),
			wantCode:   "CONFLICT",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrapped domain error unwraps",
			err:        fmt.Errorf("lookup: %w", NewNotFound("gone", nil)),
			wantCode:   "NOT_FOUND",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "pgx no rows maps to not found",
			err:        pgx.ErrNoRows,
			wantCode:   "NOT_FOUND",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store deadline maps to transient",
			err:        context.DeadlineExceeded,
			wantCode:   "TRANSIENT",
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "connection failure maps to transient",
			err:        &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantCode:   "TRANSIENT",
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unclassified error is masked as internal",
			err:        errors.New("boom"),
			wantCode:   "INTERNAL_ERROR",
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			require.Equal(t, tt.wantCode, de.Code)
			require.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}

	require.Nil(t, ToDomainError(nil))
}
