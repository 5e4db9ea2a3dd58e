package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dirsize/internal/config"
	"dirsize/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTrace = `$ cd /
$ ls
dir a
14848514 b.txt
8504156 c.dat
dir d
$ cd a
$ ls
dir e
29116 f
2557 g
62596 h.lst
$ cd e
$ ls
584 i
$ cd ..
$ cd ..
$ cd d
$ ls
4060174 j
8033020 d.log
5626152 d.ext
7214296 k
`

func post(t *testing.T, s *Server, query, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze"+query, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestAnalyze_Sample verifies the canonical answers over HTTP.
func TestAnalyze_Sample(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)
	rec := post(t, s, "", sampleTrace)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(95437), resp.TotalAtMost)
	assert.Equal(t, int64(24933642), resp.MinToDelete)
	assert.Equal(t, "/d", resp.Candidate.Path)
	assert.NotEmpty(t, resp.RunID)
	assert.Contains(t, resp.VerboseReport, "Hierarchy:")
}

// TestAnalyze_QueryOverrides verifies query parameters replace the config values.
func TestAnalyze_QueryOverrides(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)
	rec := post(t, s, "?threshold=600&capacity=100000000&required=0", sampleTrace)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(584), resp.TotalAtMost)
	assert.Equal(t, int64(0), resp.Deficit)
	assert.Equal(t, int64(584), resp.MinToDelete)
}

// TestAnalyze_BadQuery verifies malformed overrides are rejected.
func TestAnalyze_BadQuery(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)

	assert.Equal(t, http.StatusBadRequest, post(t, s, "?threshold=-1", sampleTrace).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, s, "?capacity=lots", sampleTrace).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, s, "?prompt=fish", sampleTrace).Code)
}

// TestAnalyze_TraceErrors verifies parse and navigation errors carry line context.
func TestAnalyze_TraceErrors(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)

	tests := []struct {
		name string
		body string
		kind string
		line int
	}{
		{"parse", "$ cd /\n$ ls\nbogus\n", "parse", 3},
		{"navigation", "$ cd /\n$ cd ..\n", "navigation", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Kind)
			assert.Equal(t, tt.line, resp.Line)
			require.NotNil(t, resp.Context)
			assert.Equal(t, strings.Split(tt.body, "\n")[tt.line-1], resp.Context.Target)
		})
	}
}

// TestAnalyze_NoCandidate verifies an impossible requirement is a 422.
func TestAnalyze_NoCandidate(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)
	rec := post(t, s, "?capacity=10&required=100", "$ ls\n5 a\n")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no_candidate", resp.Kind)
	assert.Nil(t, resp.Context)
}

// TestAnalyze_MethodNotAllowed verifies only POST is accepted.
func TestAnalyze_MethodNotAllowed(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// TestMetrics verifies outcomes are counted.
func TestMetrics(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)
	post(t, s, "", sampleTrace)
	post(t, s, "", "bogus\n")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `dirsize_analyses_total{outcome="ok"} 1`)
	assert.Contains(t, body, `dirsize_analyses_total{outcome="parse"} 1`)
	assert.Contains(t, body, "dirsize_trace_lines_total 24")
}

// TestStaticAndHelp verifies the embedded page and help text are served.
func TestStaticAndHelp(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>dirsize</title>")

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/help", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "# dirsize ")
	assert.NotContains(t, string(body), "{{VERSION}}")
}

// TestAnalyze_Overflow verifies sizes that overflow the total are a parse error.
func TestAnalyze_Overflow(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)
	rec := post(t, s, "", "$ cd /\n$ ls\n9223372036854775807 a\n9223372036854775807 b\n")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "parse", resp.Kind)
	assert.Equal(t, 4, resp.Line)
}

// TestAnalyze_UnreadableBody verifies a body the reader rejects is a request error.
func TestAnalyze_UnreadableBody(t *testing.T) {
	s := NewServer(config.DefaultConfig(), nil)
	rec := post(t, s, "", strings.Repeat("x", 2<<20))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "request", resp.Kind)
	assert.Nil(t, resp.Context)
}

// TestWriteJSON_EncodeError verifies a response that cannot be encoded is logged.
func TestWriteJSON_EncodeError(t *testing.T) {
	var logs bytes.Buffer
	s := NewServer(config.DefaultConfig(), logging.New("debug", &logs))

	rec := httptest.NewRecorder()
	s.writeJSON(rec, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), "write response failed")
	assert.Contains(t, logs.String(), "status=200")
}
