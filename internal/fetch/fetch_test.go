package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>Backend Engineer at Acme</body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Backend Engineer at Acme")
	assert.Equal(t, "text/html", result.ContentType)
}

func TestURL_InvalidURL(t *testing.T) {
	tests := []string{
		"",
		"not-a-url",
		"://missing-scheme",
	}
	for _, urlStr := range tests {
		_, err := URL(context.Background(), urlStr, nil)
		require.Error(t, err, "url %q", urlStr)

		var fe *Error
		assert.ErrorAs(t, err, &fe)
	}
}

func TestURL_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 404")
	// The body is still returned alongside the error.
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestExtractMainText_UsesContentSelector(t *testing.T) {
	html := `<html><body>
		<nav>Home | Jobs | About</nav>
		<div class="job-description">Build Go services. 5+ years experience.</div>
		<footer>Copyright Acme</footer>
	</body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Build Go services")
	assert.NotContains(t, text, "Copyright Acme")
	assert.NotContains(t, text, "Home | Jobs")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain posting text.</p><script>alert(1)</script></body></html>`

	text, err := ExtractMainText(html, []string{".job-description"})
	require.NoError(t, err)
	assert.Equal(t, "Plain posting text.", text)
}

func TestCleanWhitespace(t *testing.T) {
	in := "  line one  \n\n\n   line two\n   \n"
	assert.Equal(t, "line one\nline two", cleanWhitespace(in))
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("short snippet"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("long posting text ", 40)))
}

func TestPageFetcher_JobPageText(t *testing.T) {
	posting := strings.Repeat("Responsibilities include building Go services. ", 20)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>` + posting + `</main></body></html>`))
	}))
	defer server.Close()

	fetcher := NewPageFetcher().DisableBrowser()
	text, err := fetcher.JobPageText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "building Go services")
}

func TestPageFetcher_JobPageText_FetchError(t *testing.T) {
	fetcher := NewPageFetcher().DisableBrowser()
	_, err := fetcher.JobPageText(context.Background(), "not-a-url")
	assert.Error(t, err)
}
