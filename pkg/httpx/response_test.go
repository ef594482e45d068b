package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondJSON(rr, http.StatusOK, map[string]bool{"valid": true})

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	var got map[string]bool
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.True(t, got["valid"])
}

func TestRespondGIF(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondGIF(rr, http.StatusBadRequest)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "image/gif", rr.Header().Get("Content-Type"))
	require.Equal(t, "GIF89a", rr.Body.String()[:6])
}

func TestRespondText(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondText(rr, http.StatusInternalServerError, "broken")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "broken", rr.Body.String())
}
