package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

type recordedRequest struct {
	path          string
	authorization string
	contentType   string
}

func newRecordingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			path:          r.URL.Path,
			authorization: r.Header.Get("Authorization"),
			contentType:   r.Header.Get("Content-Type"),
		})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func helloWorldHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/":
		_, _ = w.Write([]byte(`{"message":"Hello World, Welcome to FastAPI!"}`))
	case "/health":
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	case "/version":
		_, _ = w.Write([]byte(`{"version":"1.0.1"}`))
	default:
		http.NotFound(w, r)
	}
}

func TestExerciser_Exercise(t *testing.T) {
	srv, requests := newRecordingServer(t, helloWorldHandler)
	var out bytes.Buffer

	err := NewExerciser(srv.Client(), &out).Exercise(context.Background(), srv.URL, "tok123")

	require.NoError(t, err)
	got := requests()
	require.Len(t, got, 3)
	for i, want := range []string{"/", "/health", "/version"} {
		require.Equal(t, want, got[i].path)
		require.Equal(t, "Bearer tok123", got[i].authorization)
		require.Equal(t, "application/json", got[i].contentType)
	}

	wantOut := "Testing: " + srv.URL + "\n" +
		"Status: 200\n" +
		`Response: {"message":"Hello World, Welcome to FastAPI!"}` + "\n" +
		"\n" +
		"Testing: " + srv.URL + "/health\n" +
		"Status: 200\n" +
		`Response: {"status":"healthy"}` + "\n" +
		"\n" +
		"Testing: " + srv.URL + "/version\n" +
		"Status: 200\n" +
		`Response: {"version":"1.0.1"}` + "\n"
	require.Equal(t, wantOut, out.String())
}

func TestExerciser_ExercisePrintsRawTextForNonJSON(t *testing.T) {
	srv, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<html>Forbidden</html>"))
			return
		}
		helloWorldHandler(w, r)
	})
	var out bytes.Buffer

	err := NewExerciser(srv.Client(), &out).Exercise(context.Background(), srv.URL, "tok")

	require.NoError(t, err)
	require.Contains(t, out.String(), "Status: 403\nResponse: <html>Forbidden</html>\n")
	require.Contains(t, out.String(), `Response: {"version":"1.0.1"}`)
}

func TestExerciser_ExerciseReportsTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(helloWorldHandler))
	url := srv.URL
	srv.Close()
	var out bytes.Buffer

	err := NewExerciser(nil, &out).Exercise(context.Background(), url, "tok")

	require.Error(t, err)
	require.Equal(t, 3, strings.Count(out.String(), "Request error: "))
	require.NotContains(t, out.String(), "Status:")
}

func TestExerciser_ExerciseReportsInvalidURL(t *testing.T) {
	var out bytes.Buffer

	err := NewExerciser(nil, &out).Exercise(context.Background(), "http://bad host", "tok")

	require.Error(t, err)
	require.Contains(t, out.String(), "Testing: http://bad host\nRequest error: build request:")
}

func TestRenderBody(t *testing.T) {
	testCases := map[string]struct {
		in   string
		want string
	}{
		"compacts json": {
			in:   "{\n  \"status\": \"healthy\"\n}",
			want: `{"status":"healthy"}`,
		},
		"plain text": {
			in:   "Service Unavailable",
			want: "Service Unavailable",
		},
		"empty body": {
			in:   "",
			want: "",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, renderBody([]byte(tc.in)))
		})
	}
}
