package shared_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcooper/taskflow-api/internal/api/shared"
)

func TestRespondWithSuccess(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	rec := httptest.NewRecorder()

	shared.RespondWithSuccess(rec, req, http.StatusOK, "Things retrieved successfully",
		map[string]int{"count": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "Things retrieved successfully", env.Message)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.TraceID)
}

func TestRespondWithSuccess_OmitsNilData(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodDelete, "/things/1", nil)
	rec := httptest.NewRecorder()

	shared.RespondWithSuccess(rec, req, http.StatusOK, "Deleted", nil)

	assert.NotContains(t, rec.Body.String(), `"data"`)
}

func TestRespondWithError_IncludesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	ctx := shared.SetTraceID(req.Context())
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	shared.RespondWithError(rec, req, http.StatusNotFound, "Thing not found")

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Thing not found", env.Message)
	assert.Equal(t, shared.GetTraceID(ctx), env.TraceID)
	assert.Len(t, env.TraceID, shared.TraceIDLength*2)
}

func TestRespondWithErrorAndLog_HidesInternalError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	rec := httptest.NewRecorder()

	internal := errors.New("pq: connection refused on 10.0.0.5:5432")
	shared.RespondWithErrorAndLog(rec, req, http.StatusInternalServerError,
		"An unexpected error occurred", internal)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "An unexpected error occurred", env.Message)
}

func TestTraceIDContext(t *testing.T) {
	t.Parallel()

	// Absent trace ID reads as empty.
	assert.Empty(t, shared.GetTraceID(context.Background()))

	ctx := shared.SetTraceID(context.Background())
	first := shared.GetTraceID(ctx)
	require.NotEmpty(t, first)

	// Each request gets its own ID.
	second := shared.GetTraceID(shared.SetTraceID(context.Background()))
	assert.NotEqual(t, first, second)
}

func TestPrincipalContext_AbsentByDefault(t *testing.T) {
	t.Parallel()

	principal, ok := shared.GetPrincipal(context.Background())
	assert.False(t, ok)
	assert.Nil(t, principal)
}
