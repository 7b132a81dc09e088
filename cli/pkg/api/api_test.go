package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vartaverse/varta/cli/pkg/client"
)

// recordedRequest captures what the fake ContentStore received
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   string
	Auth   string
}

// fakeStore starts an httptest server that answers with handler and records every request.
// Both service clients point at it.
func fakeStore(t *testing.T, handler http.HandlerFunc) *[]recordedRequest {
	t.Helper()

	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		q := map[string]string{}
		for k, v := range r.URL.Query() {
			q[k] = v[0]
		}
		reqs = append(reqs, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  q,
			Body:   string(body),
			Auth:   r.Header.Get("Authorization"),
		})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client.Reset()
	client.InitWithURLs(srv.URL, srv.URL)
	t.Cleanup(client.Reset)

	return &reqs
}

func jsonReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func testCtx() context.Context {
	return context.Background()
}

func requireOneRequest(t *testing.T, reqs *[]recordedRequest) recordedRequest {
	t.Helper()
	require.Len(t, *reqs, 1)
	return (*reqs)[0]
}
