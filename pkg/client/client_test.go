package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfpilot/pkg/client"
)

func TestClientAsk(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake body")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ask", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(8<<20))
		assert.Equal(t, "What is the total?", r.FormValue("question"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		uploaded, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, pdfBytes, uploaded)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "978.35 EUR", "page": 3}`))
	}))
	defer server.Close()

	c := client.New(server.URL)
	resp, err := c.Ask(context.Background(), pdfBytes, "What is the total?")
	require.NoError(t, err)

	assert.Equal(t, "978.35 EUR", resp.Answer)
	assert.Equal(t, 3, resp.Page)
	assert.Equal(t, "978.35 EUR", resp.AnswerString())
}

func TestClientAskListAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": ["Q1: 1.2M", "Q4: 1.9M"], "page": 7}`))
	}))
	defer server.Close()

	c := client.New(server.URL)
	resp, err := c.Ask(context.Background(), []byte("pdf"), "Compare Q1 and Q4")
	require.NoError(t, err)

	assert.Equal(t, "Q1: 1.2M, Q4: 1.9M", resp.AnswerString())
	assert.Equal(t, 7, resp.Page)
}

func TestClientAskServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "render initial page: boom"}`))
	}))
	defer server.Close()

	c := client.New(server.URL)
	_, err := c.Ask(context.Background(), []byte("pdf"), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "render initial page: boom")
}

func TestClientHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	c := client.New(server.URL)
	assert.NoError(t, c.Health(context.Background()))
}

func TestClientHealthDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := client.New(server.URL)
	err := c.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := client.New(server.URL + "/")
	assert.NoError(t, c.Health(context.Background()))
}
