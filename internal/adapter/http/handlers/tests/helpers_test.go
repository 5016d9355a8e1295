package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rahulserver/task-management-backend/internal/adapter/http/dto"
	"github.com/rahulserver/task-management-backend/pkg/apierrors"
)

const (
	aliceToken = "alice.token.sig"
	bobToken   = "bob.token.sig"
)

// tokenVerifier maps fixed bearer tokens to user ids.
type tokenVerifier struct{}

func (tokenVerifier) Verify(_ context.Context, token string) (string, error) {
	switch token {
	case aliceToken:
		return "alice", nil
	case bobToken:
		return "bob", nil
	}
	return "", errors.New("unknown token")
}

func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) dto.Envelope {
	t.Helper()

	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return dto.Envelope{Success: raw.Success, Message: raw.Message}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierrors.JsonErr {
	t.Helper()

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.False(t, got.Success)
	require.Equal(t, rec.Code, got.StatusCode)
	return got
}

func doRequestWithLanguage(router *gin.Engine, method, path, token, lang string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Accept-Language", lang)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
