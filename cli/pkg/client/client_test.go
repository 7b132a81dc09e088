package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersAndContent_AreDistinctClients(t *testing.T) {
	Reset()
	InitWithURLs("http://users.local", "http://content.local")

	require.NotNil(t, Users())
	require.NotNil(t, Content())
	assert.Equal(t, "http://users.local", Users().BaseURL)
	assert.Equal(t, "http://content.local", Content().BaseURL)
	assert.NotSame(t, Users(), Content())
}

func TestClientsAreSingletons(t *testing.T) {
	Reset()
	InitWithURLs("http://a", "http://b")

	assert.Same(t, Users(), Users())
	assert.Same(t, Content(), Content())
}

func TestSetAuthToken_SendsBearerHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	Reset()
	InitWithURLs(srv.URL, srv.URL)
	SetAuthToken("tok-123")

	_, err := Content().R().Get("/posts")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", got)
	assert.Equal(t, "tok-123", AuthToken())
}

func TestClearAuthToken_RemovesHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	Reset()
	InitWithURLs(srv.URL, srv.URL)
	SetAuthToken("tok-123")
	ClearAuthToken()

	_, err := Users().R().Get("/users/me")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, AuthToken())
}

func TestTokenSurvivesReinit(t *testing.T) {
	Reset()
	InitWithURLs("http://a", "http://b")
	SetAuthToken("keep-me")

	InitWithURLs("http://c", "http://d")
	assert.Equal(t, "keep-me", Users().Token)
	assert.Equal(t, "keep-me", Content().Token)
}

func TestNoRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	Reset()
	InitWithURLs(srv.URL, srv.URL)

	resp, err := Content().R().Get("/posts")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
	assert.Equal(t, 1, calls)
}
