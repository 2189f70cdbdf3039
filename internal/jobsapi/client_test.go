package jobsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParams_Values(t *testing.T) {
	v := SearchParams{
		Keywords:        "data analyst",
		EmploymentTypes: []int{1, 2, 3},
		MinSalary:       3000,
	}.Values()

	assert.Equal(t, "1", v.Get("page"))
	assert.Equal(t, "20", v.Get("per_page_count"))
	assert.Equal(t, "data analyst", v.Get("keywords"))
	assert.Equal(t, "1,2,3", v.Get("EmploymentType"))
	assert.Equal(t, "3000", v.Get("id_Job_Salary"))
	assert.Equal(t, "activation_date", v.Get("sort_field"))
	assert.Equal(t, "desc", v.Get("sort_direction"))

	// Defaults pick SGD per month.
	assert.Equal(t, "1275916990", v.Get("id_Job_Currency"))
	assert.Equal(t, "1898", v.Get("id_Job_Interval"))

	// Unset filters stay out of the query.
	assert.False(t, v.Has("JobCategory"))
	assert.False(t, v.Has("id_Job_MaxSalary"))
	assert.False(t, v.Has("Position"))
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "engineer", r.URL.Query().Get("keywords"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"result":[
			{"job":{"Title":"Software Engineer","sid":"abc123"},"company":{"CompanyName":"Acme"}},
			{"job":{"Title":"Platform Engineer"},"company":{}}
		]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	items, err := client.Search(context.Background(), SearchParams{Keywords: "engineer"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Software Engineer", items[0].Job.Title())
	assert.Equal(t, "abc123", items[0].Job.ID())
}

func TestClient_SearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Search(context.Background(), SearchParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_SearchPagesOrder(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		mu.Lock()
		seen[page]++
		mu.Unlock()
		w.Write([]byte(`{"data":{"result":[{"job":{"Title":"Job page ` + page + `"},"company":{}}]}}`))
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL).SearchPages(context.Background(), SearchParams{Keywords: "x"}, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Items arrive in page order regardless of fetch interleaving.
	for i, item := range items {
		assert.Equal(t, "Job page "+strconv.Itoa(i+1), item.Job.Title())
	}
	assert.Len(t, seen, 3)
}

func TestSummarize_SyntheticIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"result":[{"job":{"Title":"No ID Job"},"company":{}}]}}`))
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL).Search(context.Background(), SearchParams{})
	require.NoError(t, err)

	summaries := Summarize(items)
	require.Len(t, summaries, 1)
	assert.Equal(t, "job-0", summaries[0].JobID)
	assert.Equal(t, "No ID Job", summaries[0].Title)
}
