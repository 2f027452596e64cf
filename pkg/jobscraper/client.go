// Package jobscraper talks to a JobSpy-compatible scraping service.
package jobscraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"career-portal-backend/internal/domain"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ErrNotConfigured is returned by Search when no backend URL is set.
var ErrNotConfigured = errors.New("job scraper url is empty")

type Client struct {
	BaseURL string
	httpDo  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpDo:  &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	SiteName      []string `json:"site_name"`
	SearchTerm    string   `json:"search_term"`
	Location      string   `json:"location,omitempty"`
	ResultsWanted int      `json:"results_wanted"`
	HoursOld      int      `json:"hours_old"`
	CountryIndeed string   `json:"country_indeed,omitempty"`
}

type scrapedJob struct {
	ID          string   `json:"id"`
	Site        string   `json:"site"`
	JobURL      string   `json:"job_url"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	DatePosted  string   `json:"date_posted"`
	JobType     string   `json:"job_type"`
	IsRemote    bool     `json:"is_remote"`
	MinAmount   *float64 `json:"min_amount"`
	MaxAmount   *float64 `json:"max_amount"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
}

// Search posts the parameters to {BaseURL}/api/v1/search_jobs. The service
// answers either with a bare array or with {"jobs": [...]}.
func (c *Client) Search(ctx context.Context, params domain.JobSearchParams) ([]domain.JobListing, error) {
	if c.BaseURL == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(searchRequest{
		SiteName:      params.Sites,
		SearchTerm:    params.SearchTerm,
		Location:      params.Location,
		ResultsWanted: params.ResultsWanted,
		HoursOld:      params.HoursOld,
		CountryIndeed: params.Country,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/search_jobs", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("job scraper http %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("job scraper response: %w", err)
	}

	var jobs []scrapedJob
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &jobs)
	} else {
		var wrapped struct {
			Jobs []scrapedJob `json:"jobs"`
		}
		err = json.Unmarshal(trimmed, &wrapped)
		jobs = wrapped.Jobs
	}
	if err != nil {
		return nil, fmt.Errorf("job scraper response: %w", err)
	}

	out := make([]domain.JobListing, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, domain.JobListing{
			ID:          j.ID,
			Site:        j.Site,
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			JobType:     j.JobType,
			IsRemote:    j.IsRemote,
			MinAmount:   j.MinAmount,
			MaxAmount:   j.MaxAmount,
			Currency:    j.Currency,
			DatePosted:  j.DatePosted,
			JobURL:      j.JobURL,
			Description: cleanDescription(j.Description),
		})
	}
	return out, nil
}

// cleanDescription turns HTML job descriptions into markdown. Plain text and
// unconvertible markup are returned trimmed.
func cleanDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if !strings.Contains(desc, "<") || !strings.Contains(desc, ">") {
		return desc
	}
	md, err := htmltomarkdown.ConvertString(desc)
	if err != nil {
		return desc
	}
	return strings.TrimSpace(md)
}
