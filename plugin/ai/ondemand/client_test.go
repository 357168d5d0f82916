package ondemand

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, chatURL, mediaURL string) *Client {
	t.Helper()
	c, err := NewClient(&Config{
		APIKey:       "test-key",
		ChatBaseURL:  chatURL,
		MediaBaseURL: mediaURL,
	})
	require.NoError(t, err)
	return c
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(&Config{ChatBaseURL: "http://example.com"})
	assert.Error(t, err)

	_, err = NewClient(&Config{APIKey: "k"})
	assert.Error(t, err)

	c, err := NewClient(&Config{APIKey: "k", ChatBaseURL: "http://example.com"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestOpenSession(t *testing.T) {
	var gotKey, gotPath string
	var gotBody openSessionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("apikey")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"sess-123"}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")
	session, err := c.OpenSession(context.Background(), []string{"agent-1", "agent-2"}, "student_42", []Metadata{{Key: "topic", Value: "algebra"}})
	require.NoError(t, err)

	assert.Equal(t, "sess-123", session.ID)
	assert.Equal(t, "student_42", session.ExternalUserID)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "/sessions", gotPath)
	assert.Equal(t, []string{"agent-1", "agent-2"}, gotBody.AgentIDs)
	assert.Equal(t, "student_42", gotBody.ExternalUserID)
}

func TestOpenSessionServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal failure", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")
	_, err := c.OpenSession(context.Background(), []string{"agent-1"}, "u", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
}

func TestOpenSessionRequiresAgents(t *testing.T) {
	c := newTestClient(t, "http://unused", "")
	_, err := c.OpenSession(context.Background(), nil, "u", nil)
	assert.Error(t, err)
}

func TestOpenSessionMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")
	_, err := c.OpenSession(context.Background(), []string{"agent-1"}, "u", nil)
	assert.Error(t, err)
}

func TestUploadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "/public/file/raw", r.URL.Path)
		assert.Equal(t, "sess-1", r.FormValue("sessionId"))
		assert.Equal(t, "question.png", r.FormValue("name"))
		assert.Equal(t, []string{"file-agent-a", "file-agent-b"}, r.MultipartForm.Value["agents"])

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"file-9","url":"https://cdn/file-9","context":"x = 2"}}`)
	}))
	defer server.Close()

	c := newTestClient(t, "http://unused", server.URL)
	media, err := c.UploadFile(context.Background(), "sess-1", "question.png", []byte{0x89, 0x50}, []string{"file-agent-a", "file-agent-b"})
	require.NoError(t, err)
	assert.Equal(t, "file-9", media.ID)
	assert.Equal(t, "https://cdn/file-9", media.URL)
	assert.Equal(t, "x = 2", media.Context)
}

func TestUploadFileServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too large", http.StatusRequestEntityTooLarge)
	}))
	defer server.Close()

	c := newTestClient(t, "http://unused", server.URL)
	_, err := c.UploadFile(context.Background(), "sess-1", "f.png", []byte("data"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "413")
}
