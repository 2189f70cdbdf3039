// Package jobsapi is the HTTP client for the FindSGJobs search endpoint.
// The backend only filters server-side on the keyword; everything else is
// encoded anyway so the query stays faithful to the upstream contract.
package jobsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-gap-analyzer/internal/jobrecord"
)

// DefaultBaseURL is the production search endpoint.
const DefaultBaseURL = "https://www.findsgjobs.com/apis/job/searchable"

// Backend defaults. Currency and interval are backend entity ids, not
// amounts; these pick SGD per month.
const (
	DefaultPerPage  = 20
	defaultCurrency = 1275916990
	defaultInterval = 1898
	defaultSort     = "activation_date"
	defaultSortDir  = "desc"

	requestTimeout = 30 * time.Second

	// searchConcurrency bounds parallel page fetches in SearchPages.
	searchConcurrency = 4
)

// SearchParams describes one search request. Zero values are either omitted
// from the query or replaced by the backend defaults above.
type SearchParams struct {
	Page                 int
	PerPage              int
	Keywords             string
	EmploymentTypes      []int
	JobCategories        []int
	MinEducationLevels   []int
	MinYearsOfExperience []int
	MRTStations          []int
	Position             string
	Currency             int
	MinSalary            int
	MaxSalary            int
	Interval             int
	SortField            string
	SortDirection        string
}

// Values encodes the parameters as the backend expects them: integer lists
// comma-joined, empty values left out.
func (p SearchParams) Values() url.Values {
	v := url.Values{}

	page := p.Page
	if page < 1 {
		page = 1
	}
	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("per_page_count", strconv.Itoa(perPage))

	if p.Keywords != "" {
		v.Set("keywords", p.Keywords)
	}
	setJoined(v, "EmploymentType", p.EmploymentTypes)
	setJoined(v, "JobCategory", p.JobCategories)
	setJoined(v, "MinimumEducationLevel", p.MinEducationLevels)
	setJoined(v, "MinimumYearsofExperience", p.MinYearsOfExperience)
	setJoined(v, "id_Job_NearestMRTStation", p.MRTStations)
	if p.Position != "" {
		v.Set("Position", p.Position)
	}

	currency := p.Currency
	if currency == 0 {
		currency = defaultCurrency
	}
	v.Set("id_Job_Currency", strconv.Itoa(currency))
	if p.MinSalary > 0 {
		v.Set("id_Job_Salary", strconv.Itoa(p.MinSalary))
	}
	if p.MaxSalary > 0 {
		v.Set("id_Job_MaxSalary", strconv.Itoa(p.MaxSalary))
	}
	interval := p.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	v.Set("id_Job_Interval", strconv.Itoa(interval))

	sortField := p.SortField
	if sortField == "" {
		sortField = defaultSort
	}
	sortDir := p.SortDirection
	if sortDir == "" {
		sortDir = defaultSortDir
	}
	v.Set("sort_field", sortField)
	v.Set("sort_direction", sortDir)

	return v
}

func setJoined(v url.Values, key string, ids []int) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	v.Set(key, strings.Join(parts, ","))
}

// Client queries the search endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. An empty baseURL uses the production endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// searchResponse mirrors the backend envelope: {"data": {"result": [...]}}.
type searchResponse struct {
	Data struct {
		Result []jobrecord.Item `json:"result"`
	} `json:"data"`
}

// Search fetches one result page.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]jobrecord.Item, error) {
	reqURL := c.baseURL + "?" + params.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return decoded.Data.Result, nil
}

// SearchPages fetches pages 1..pages concurrently and returns the items in
// page order. params.Page is ignored. A failure on any page fails the whole
// call.
func (c *Client) SearchPages(ctx context.Context, params SearchParams, pages int) ([]jobrecord.Item, error) {
	if pages < 1 {
		pages = 1
	}

	results := make([][]jobrecord.Item, pages)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)

	for i := 0; i < pages; i++ {
		i := i
		g.Go(func() error {
			p := params
			p.Page = i + 1
			items, err := c.Search(ctx, p)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []jobrecord.Item
	for _, page := range results {
		all = append(all, page...)
	}
	return all, nil
}

// Summarize flattens search items into display-ready summaries, numbering
// synthetic ids from the item positions.
func Summarize(items []jobrecord.Item) []jobrecord.Summary {
	out := make([]jobrecord.Summary, len(items))
	for i, item := range items {
		out[i] = jobrecord.Summarize(item, i)
	}
	return out
}
