package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medstock/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// APIClient sends JSON requests straight into an http.Handler
type APIClient struct {
	Handler http.Handler
	Token   string
}

// NewAPIClient creates a client without credentials
func NewAPIClient(h http.Handler) *APIClient {
	return &APIClient{Handler: h}
}

// WithToken returns a copy of the client that sends token as a bearer token
func (c *APIClient) WithToken(token string) *APIClient {
	return &APIClient{Handler: c.Handler, Token: token}
}

// Do sends a request and decodes the response envelope when there is one
func (c *APIClient) Do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	w := httptest.NewRecorder()
	c.Handler.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 && isJSON(w) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Failed to decode response: %s", w.Body.String())
	}
	return w, resp
}

func isJSON(w *httptest.ResponseRecorder) bool {
	ct := w.Header().Get("Content-Type")
	return ct == "" || bytes.HasPrefix([]byte(ct), []byte("application/json"))
}

// DataMap returns the envelope data as a JSON object
func DataMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "Expected object data, got %T", resp.Data)
	return m
}

// DataList returns the envelope data as a JSON array
func DataList(t *testing.T, resp dto.Response) []any {
	t.Helper()
	l, ok := resp.Data.([]any)
	require.True(t, ok, "Expected array data, got %T", resp.Data)
	return l
}

// AssertError checks the status and error code of a failed response
func AssertError(t *testing.T, w *httptest.ResponseRecorder, resp dto.Response, status int, code string) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	assert.False(t, resp.Success)
	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, code, resp.Error.Code)
	}
}
