package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"uptask-project/backend/services"

	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: fmt.Errorf("project not found: %w", services.ErrNotFound), status: http.StatusNotFound},
		{name: "invalid request", err: fmt.Errorf("mismatch: %w", services.ErrInvalidRequest), status: http.StatusBadRequest},
		{name: "unauthorized", err: fmt.Errorf("not the manager: %w", services.ErrUnauthorized), status: http.StatusUnauthorized},
		{name: "forbidden", err: fmt.Errorf("already confirmed: %w", services.ErrForbidden), status: http.StatusForbidden},
		{name: "conflict", err: fmt.Errorf("duplicate email: %w", services.ErrConflict), status: http.StatusConflict},
		{name: "internal", err: fmt.Errorf("db down: %w", services.ErrInternal), status: http.StatusInternalServerError},
		{name: "unknown", err: fmt.Errorf("something odd"), status: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusForError(tc.err); got != tc.status {
				t.Fatalf("statusForError(%v) = %d, want %d", tc.err, got, tc.status)
			}
		})
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("mongo: connection refused at 10.0.0.3: %w", services.ErrInternal))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "Something went wrong", body["message"])
}

func TestWriteErrorUserMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("only the manager can delete the project: %w", services.ErrUnauthorized))

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "only the manager can delete the project", body["message"])
}
