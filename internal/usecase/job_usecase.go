package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/jobscraper"
	"career-portal-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const (
	defaultResultsWanted = 20
	defaultHoursOld      = 72
	defaultCountry       = "USA"
	recentSearchLimit    = 10
)

var defaultSites = []string{"indeed", "linkedin"}

type jobUsecase struct {
	scraper  domain.JobScraper
	cache    domain.JobCache
	history  domain.JobSearchRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewJobUsecase(scraper domain.JobScraper, cache domain.JobCache, history domain.JobSearchRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		scraper:  scraper,
		cache:    cache,
		history:  history,
		validate: validate,
		now:      time.Now,
	}
}

// withDefaults fills unset search parameters.
func withDefaults(p domain.JobSearchParams) domain.JobSearchParams {
	if len(p.Sites) == 0 {
		p.Sites = append([]string(nil), defaultSites...)
	}
	if p.ResultsWanted == 0 {
		p.ResultsWanted = defaultResultsWanted
	}
	if p.HoursOld == 0 {
		p.HoursOld = defaultHoursOld
	}
	if strings.TrimSpace(p.Country) == "" {
		p.Country = defaultCountry
	}
	p.SearchTerm = strings.TrimSpace(p.SearchTerm)
	p.Location = strings.TrimSpace(p.Location)
	return p
}

// Search serves a job search from cache when possible. When the scraper
// fails the sample listings are returned instead and nothing is cached.
func (u *jobUsecase) Search(ctx context.Context, params *domain.JobSearchParams) (*domain.JobSearchResult, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.validate.Struct(params); err != nil {
		return nil, validationError(err)
	}
	p := withDefaults(*params)

	res, err := u.search(ctx, p)
	if err != nil {
		return nil, err
	}
	u.record(ctx, cu.UID, p, res)
	return res, nil
}

func (u *jobUsecase) search(ctx context.Context, p domain.JobSearchParams) (*domain.JobSearchResult, error) {
	key := ""
	if u.cache != nil {
		key = u.cache.Key(p)
		if jobs, ok := u.cache.Get(ctx, key); ok {
			return &domain.JobSearchResult{Jobs: jobs, Count: len(jobs), Cached: true}, nil
		}
	}

	jobs, err := u.scraper.Search(ctx, p)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Log.Warn("job scraper failed, serving sample listings", "search_term", p.SearchTerm, "error", err)
		sample := jobscraper.SampleJobs(p.SearchTerm)
		return &domain.JobSearchResult{Jobs: sample, Count: len(sample), Fallback: true}, nil
	}

	if jobs == nil {
		jobs = []domain.JobListing{}
	}
	if u.cache != nil {
		u.cache.Set(ctx, key, jobs)
	}
	return &domain.JobSearchResult{Jobs: jobs, Count: len(jobs)}, nil
}

// record stores the search in the user's history. Failures are logged only.
func (u *jobUsecase) record(ctx context.Context, uid string, p domain.JobSearchParams, res *domain.JobSearchResult) {
	if u.history == nil {
		return
	}
	rec := &domain.JobSearchRecord{
		UserID:      uid,
		Sites:       p.Sites,
		SearchTerm:  p.SearchTerm,
		Location:    p.Location,
		ResultCount: res.Count,
		Fallback:    res.Fallback,
		CreatedAt:   u.now().UTC(),
	}
	if err := u.history.Record(ctx, rec); err != nil {
		logger.Log.Warn("record job search failed", "user_id", uid, "error", err)
	}
}

func (u *jobUsecase) RecentSearches(ctx context.Context) ([]domain.JobSearchRecord, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.history == nil {
		return []domain.JobSearchRecord{}, nil
	}
	recs, err := u.history.ListRecent(ctx, cu.UID, recentSearchLimit)
	if err != nil {
		logger.Log.Error("list job searches failed", "user_id", cu.UID, "error", err)
		return nil, apperror.LoadFailed(err)
	}
	if recs == nil {
		recs = []domain.JobSearchRecord{}
	}
	return recs, nil
}

// ExportSearch runs a search and renders its listings as a workbook.
func (u *jobUsecase) ExportSearch(ctx context.Context, params *domain.JobSearchParams) ([]byte, string, error) {
	res, err := u.Search(ctx, params)
	if err != nil {
		return nil, "", err
	}

	s := sheet{
		name:    "Jobs",
		headers: []string{"TITLE", "COMPANY", "LOCATION", "SITE", "JOB TYPE", "REMOTE", "MIN SALARY", "MAX SALARY", "CURRENCY", "POSTED", "URL"},
	}
	for _, j := range res.Jobs {
		s.rows = append(s.rows, []any{
			j.Title, j.Company, j.Location, j.Site, j.JobType, yesNo(j.IsRemote),
			amountCell(j.MinAmount), amountCell(j.MaxAmount), j.Currency, j.DatePosted, j.JobURL,
		})
	}

	data, err := buildWorkbook([]sheet{s})
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	name := exportFilename("jobs_"+params.SearchTerm, fmt.Sprintf("jobs_%s", u.now().Format("20060102")))
	return data, name, nil
}

func amountCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
