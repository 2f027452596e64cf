package domain

import (
	"context"
	"time"
)

// JobSearchParams mirrors the request accepted by the job scraping backend.
type JobSearchParams struct {
	Sites         []string `json:"siteName" validate:"omitempty,max=6,dive,oneof=indeed linkedin glassdoor zip_recruiter google bayt"`
	SearchTerm    string   `json:"searchTerm" validate:"required,min=2,max=100"`
	Location      string   `json:"location" validate:"max=100"`
	ResultsWanted int      `json:"resultsWanted" validate:"omitempty,min=1,max=100"`
	HoursOld      int      `json:"hoursOld" validate:"omitempty,min=1,max=720"`
	Country       string   `json:"country" validate:"max=60"`
}

type JobListing struct {
	ID          string   `json:"id"`
	Site        string   `json:"site"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	JobType     string   `json:"jobType,omitempty"`
	IsRemote    bool     `json:"isRemote"`
	MinAmount   *float64 `json:"minAmount,omitempty"`
	MaxAmount   *float64 `json:"maxAmount,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	DatePosted  string   `json:"datePosted,omitempty"`
	JobURL      string   `json:"jobUrl"`
	Description string   `json:"description,omitempty"`
}

type JobSearchResult struct {
	Jobs     []JobListing `json:"jobs"`
	Count    int          `json:"count"`
	Cached   bool         `json:"cached"`
	Fallback bool         `json:"fallback"`
}

// JobSearchRecord is one remembered search of a user.
type JobSearchRecord struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Sites       []string  `json:"sites"`
	SearchTerm  string    `json:"searchTerm"`
	Location    string    `json:"location"`
	ResultCount int       `json:"resultCount"`
	Fallback    bool      `json:"fallback"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobScraper is the external job scraping backend.
type JobScraper interface {
	Search(ctx context.Context, params JobSearchParams) ([]JobListing, error)
}

// JobCache stores search results keyed by their normalised parameters.
type JobCache interface {
	Key(params JobSearchParams) string
	Get(ctx context.Context, key string) ([]JobListing, bool)
	Set(ctx context.Context, key string, jobs []JobListing)
}

type JobSearchRepository interface {
	Record(ctx context.Context, rec *JobSearchRecord) error
	ListRecent(ctx context.Context, userID string, limit int) ([]JobSearchRecord, error)
}

type JobUsecase interface {
	Search(ctx context.Context, params *JobSearchParams) (*JobSearchResult, error)
	RecentSearches(ctx context.Context) ([]JobSearchRecord, error)
	ExportSearch(ctx context.Context, params *JobSearchParams) ([]byte, string, error)
}
