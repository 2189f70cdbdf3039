package keywords

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Deterministic(t *testing.T) {
	ex := NewExtractor(nil, 0)
	text := "Python and SQL experience with Excel reporting"

	first := ex.Extract(text)
	second := ex.Extract(text)
	assert.Equal(t, first.Sorted(), second.Sorted())
}

func TestExtract_DisjointFromStopwords(t *testing.T) {
	ex := NewExtractor(nil, 0)
	set := ex.Extract("the candidate will have strong skills and experience in python for years")

	for _, stop := range DefaultStopwords() {
		assert.False(t, set.Contains(stop), "stopword %q leaked into keyword set", stop)
	}
	assert.True(t, set.Contains("python"))
}

func TestExtract_TokenShape(t *testing.T) {
	ex := NewExtractor(nil, 0)
	set := ex.Extract("Go C++ SQL3 node.js data-driven AI ml")

	pattern := regexp.MustCompile(`^[a-z]{3,}$`)
	for kw := range set {
		assert.Regexp(t, pattern, kw)
	}
	// "Go", "AI" and "ml" are under the minimum length; digits and symbols
	// never appear in keywords.
	assert.False(t, set.Contains("go"))
	assert.False(t, set.Contains("ai"))
	assert.True(t, set.Contains("node"))
	assert.True(t, set.Contains("data"))
	assert.True(t, set.Contains("driven"))
}

func TestExtract_MinLengthConfigurable(t *testing.T) {
	ex := NewExtractor(nil, 5)
	set := ex.Extract("data python sql")

	assert.False(t, set.Contains("data"))
	assert.False(t, set.Contains("sql"))
	assert.True(t, set.Contains("python"))
}

func TestExtract_CustomStopwords(t *testing.T) {
	ex := NewExtractor([]string{"python"}, 3)
	set := ex.Extract("python sql")

	assert.False(t, set.Contains("python"))
	assert.True(t, set.Contains("sql"))
}

func TestOverlap_ScenarioA(t *testing.T) {
	job := Set{"python": {}, "sql": {}, "excel": {}}
	resume := Set{"python": {}, "excel": {}, "communication": {}}

	overlap, gaps := Overlap(job, resume)
	require.Equal(t, []string{"excel", "python"}, overlap)
	require.Equal(t, []string{"sql"}, gaps)
}

func TestOverlap_EmptyJob(t *testing.T) {
	overlap, gaps := Overlap(Set{}, Set{"python": {}})
	assert.Empty(t, overlap)
	assert.Empty(t, gaps)
}
