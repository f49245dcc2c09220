package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/amishk599/jobwatch/internal/config"
	"github.com/amishk599/jobwatch/internal/model"
)

// amazonJob represents a single job in the amazon.jobs search API response.
type amazonJob struct {
	IDIcims             string `json:"id_icims"`
	Title               string `json:"title"`
	Location            string `json:"location"`
	PostedDate          string `json:"posted_date"` // "January 2, 2006"
	Level               string `json:"level"`
	BasicQualifications string `json:"basic_qualifications"`
	JobPath             string `json:"job_path"`
}

// amazonResponse is the top-level search.json response.
type amazonResponse struct {
	Error *string     `json:"error"`
	Hits  int         `json:"hits"`
	Jobs  []amazonJob `json:"jobs"`
}

// postedDateLayout is the human-readable date format amazon.jobs publishes.
const postedDateLayout = "January 2, 2006"

// pagePause is the gap between paged requests to the same endpoint.
const pagePause = 500 * time.Millisecond

// AmazonAdapter fetches listings from the amazon.jobs search API.
type AmazonAdapter struct {
	endpoint    string
	query       string
	category    string
	resultLimit int
	maxPages    int
	client      *http.Client
	now         func() time.Time
}

// NewAmazonAdapter creates an adapter for the configured search endpoint.
func NewAmazonAdapter(src config.SourceConfig, client *http.Client) *AmazonAdapter {
	return &AmazonAdapter{
		endpoint:    src.Endpoint,
		query:       src.Query,
		category:    src.Category,
		resultLimit: src.ResultLimit,
		maxPages:    src.MaxPages,
		client:      client,
		now:         time.Now,
	}
}

// FetchListings retrieves all pages of the search and normalizes them into
// the Listing model. The full set is fetched before returning so a partial
// paging failure never produces a truncated (and thus misleading) run.
func (a *AmazonAdapter) FetchListings(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing

	for page := 0; page < a.maxPages; page++ {
		if page > 0 {
			select {
			case <-ctx.Done():
				return nil, &model.FetchError{Source: a.endpoint, Err: ctx.Err()}
			case <-time.After(pagePause):
			}
		}

		jobs, hits, err := a.fetchPage(ctx, page*a.resultLimit)
		if err != nil {
			return nil, err
		}

		fetchedAt := a.now()
		for _, aj := range jobs {
			listings = append(listings, a.normalize(aj, fetchedAt))
		}

		if len(jobs) < a.resultLimit || len(listings) >= hits {
			break
		}
	}

	return listings, nil
}

// fetchPage requests a single page at the given offset.
func (a *AmazonAdapter) fetchPage(ctx context.Context, offset int) ([]amazonJob, int, error) {
	u, err := url.Parse(a.endpoint)
	if err != nil {
		return nil, 0, &model.FetchError{Source: a.endpoint, Err: err}
	}

	q := u.Query()
	if a.query != "" {
		q.Set("base_query", a.query)
	}
	if a.category != "" {
		q.Set("category[]", a.category)
	}
	q.Set("sort", "recent")
	q.Set("result_limit", strconv.Itoa(a.resultLimit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, &model.FetchError{Source: a.endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, &model.FetchError{Source: a.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		httpErr := &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
		return nil, 0, &model.FetchError{Source: a.endpoint, Err: httpErr}
	}

	var ar amazonResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, 0, &model.FetchError{Source: a.endpoint, Err: err}
	}
	if ar.Error != nil && *ar.Error != "" {
		return nil, 0, &model.FetchError{Source: a.endpoint, Err: fmt.Errorf("api error: %s", *ar.Error)}
	}

	return ar.Jobs, ar.Hits, nil
}

// normalize maps an API job into the Listing model.
func (a *AmazonAdapter) normalize(aj amazonJob, fetchedAt time.Time) model.Listing {
	l := model.Listing{
		ID:             aj.IDIcims,
		Title:          aj.Title,
		Location:       aj.Location,
		URL:            "https://www.amazon.jobs/en/jobs/" + aj.IDIcims,
		Level:          aj.Level,
		Qualifications: extractText(aj.BasicQualifications),
		FetchedAt:      fetchedAt,
	}

	if aj.PostedDate != "" {
		if t, err := time.Parse(postedDateLayout, aj.PostedDate); err == nil {
			l.PostedAt = &t
		}
	}

	return l
}
