package backend_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"brandTracker/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

type brokenToken struct{}

func (brokenToken) Token(ctx context.Context) (string, error) {
	return "", errors.New("storage locked")
}

func TestClient_Do_Headers(t *testing.T) {
	tests := []struct {
		name         string
		tokens       backend.TokenSource
		expectedAuth string
	}{
		{name: "with token", tokens: staticToken("secret"), expectedAuth: "Bearer secret"},
		{name: "without token", tokens: staticToken(""), expectedAuth: ""},
		{name: "nil token source", tokens: nil, expectedAuth: ""},
		{name: "token read error", tokens: brokenToken{}, expectedAuth: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got http.Header
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				w.Write([]byte(`{"success":true}`))
			}))
			defer srv.Close()

			c := backend.New(srv.URL, tt.tokens)
			require.NoError(t, c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil))

			assert.Equal(t, "application/json", got.Get("Content-Type"))
			assert.Equal(t, "application/json", got.Get("Accept"))
			assert.Equal(t, tt.expectedAuth, got.Get("Authorization"))
		})
	}
}

func TestClient_Do_RequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/task/addTask", r.URL.Path)
		assert.Equal(t, "Acme", r.URL.Query().Get("company"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"title":"x"}`, string(body))

		w.Write([]byte(`{"success":true,"data":{"title":"x"},"message":"ok","total":3}`))
	}))
	defer srv.Close()

	var out backend.Envelope[map[string]string]
	c := backend.New(srv.URL+"/", staticToken("t"))
	err := c.Do(context.Background(), http.MethodPost, "/api/task/addTask",
		url.Values{"company": {"Acme"}}, map[string]string{"title": "x"}, &out)

	require.NoError(t, err)
	assert.True(t, out.OK())
	assert.Equal(t, "x", out.Data["title"])
	assert.Equal(t, "ok", out.Message)
	assert.Equal(t, 3, out.Total)
}

func TestClient_Do_Errors(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedStatus  int
		expectedMessage string
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"success":false,"message":"Название обязательно"}`, expectedStatus: 400, expectedMessage: "Название обязательно"},
		{name: "error field", status: http.StatusUnauthorized, body: `{"error":"jwt expired"}`, expectedStatus: 401, expectedMessage: "jwt expired"},
		{name: "no json", status: http.StatusInternalServerError, body: `<html>oops</html>`, expectedStatus: 500, expectedMessage: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := backend.New(srv.URL, nil).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)

			var apiErr *backend.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.expectedStatus, backend.StatusOf(err))
			assert.Equal(t, tt.expectedMessage, backend.MessageOf(err))
		})
	}
}

func TestClient_Do_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := backend.New(srv.URL, nil, backend.WithTimeout(20*time.Millisecond))
	err := c.Do(context.Background(), http.MethodGet, "/slow", nil, nil, nil)

	require.Error(t, err)
	assert.Zero(t, backend.StatusOf(err))
	assert.Empty(t, backend.MessageOf(err))
	assert.Contains(t, backend.TransportMessageOf(err), "Client.Timeout")
}

func TestEnvelope_Refusal(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectedOK bool
	}{
		{name: "explicit success", body: `{"success":true,"data":"x"}`, expectedOK: true},
		{name: "field omitted", body: `{"data":"x"}`, expectedOK: true},
		{name: "explicit failure", body: `{"success":false,"message":"Нет прав"}`, expectedOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			var out backend.Envelope[string]
			require.NoError(t, backend.New(srv.URL, nil).Do(context.Background(), http.MethodGet, "/x", nil, nil, &out))

			assert.Equal(t, tt.expectedOK, out.OK())
			err := out.Refusal(http.StatusOK)
			if tt.expectedOK {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, http.StatusOK, backend.StatusOf(err))
			assert.Equal(t, "Нет прав", backend.MessageOf(err))
			assert.Empty(t, backend.TransportMessageOf(err))
		})
	}

	var empty backend.Envelope[string]
	assert.True(t, empty.OK(), "an empty body is not a refusal")
}

func TestClient_Do_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":`))
	}))
	defer srv.Close()

	var out backend.Envelope[[]string]
	err := backend.New(srv.URL, nil).Do(context.Background(), http.MethodGet, "/x", nil, nil, &out)
	assert.Error(t, err)
}
