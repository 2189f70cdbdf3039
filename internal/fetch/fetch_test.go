package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "hello")
	assert.Contains(t, result.ContentType, "text/html")
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-url", nil)
	require.Error(t, err)

	fetchErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Contains(t, fetchErr.Message, "invalid URL")
}

func TestURL_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)
	// The body still comes back for diagnostics.
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestJobPosting(t *testing.T) {
	page := `<html><body>
		<nav>Home | Jobs</nav>
		<div class="job-description">
			<h1>Data Analyst</h1>
			<p>Build dashboards with SQL and Excel.</p>
		</div>
		<footer>© Jobs Inc</footer>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	result, err := JobPosting(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "Data Analyst")
	assert.Contains(t, result.Text, "SQL and Excel")
	assert.NotContains(t, result.Text, "Home | Jobs")
	assert.NotContains(t, result.Text, "Jobs Inc")
}

func TestExtractMainText_BodyFallback(t *testing.T) {
	text, err := ExtractMainText("<html><body><p>plain page text</p></body></html>", JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "plain page text", text)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `<html><body><main>keep this<div class="apply-widget">remove this</div></main></body></html>`
	text, err := ExtractMainText(html, []string{"main"}, ".apply-widget")
	require.NoError(t, err)
	assert.Contains(t, text, "keep this")
	assert.NotContains(t, text, "remove this")
}
