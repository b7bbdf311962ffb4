package response

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnshRaj112/esangrahan-backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON_ZeroCountRendered(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, Envelope{Success: true, Count: Count(0), Data: []string{}})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeEnvelope(t, rec)
	assert.Equal(t, float64(0), body["count"])
	assert.NotContains(t, body, "message")
}

func TestJSON_UnencodableEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, Envelope{Success: true, Data: math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Server Error", body["message"])
}

func TestRenderer_ExpectedError(t *testing.T) {
	rd := &Renderer{Log: zap.NewNop()}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	rd.Error(rec, req, apperrors.NewValidation("Validation failed", []string{"Name is required"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, []any{"Name is required"}, body["errors"])
	assert.NotContains(t, body, "stack")
}

func TestRenderer_StackOnlyOutsideProduction(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	dev := &Renderer{Log: zap.NewNop()}
	rec := httptest.NewRecorder()
	dev.Error(rec, req, errors.New("kaboom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Server Error", body["message"])
	assert.Equal(t, "kaboom", body["stack"])

	prod := &Renderer{Log: zap.NewNop(), Production: true}
	rec = httptest.NewRecorder()
	prod.Error(rec, req, errors.New("kaboom"))
	body = decodeEnvelope(t, rec)
	assert.NotContains(t, body, "stack")
}
