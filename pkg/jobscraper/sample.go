package jobscraper

import (
	"strings"

	"career-portal-backend/internal/domain"
)

func amount(v float64) *float64 { return &v }

var sampleJobs = []domain.JobListing{
	{
		ID: "sample-1", Site: "indeed", Title: "Software Engineer", Company: "Northwind Labs",
		Location: "Remote", JobType: "fulltime", IsRemote: true,
		MinAmount: amount(95000), MaxAmount: amount(130000), Currency: "USD",
		JobURL: "https://www.indeed.com/", Description: "Build and maintain backend services.",
	},
	{
		ID: "sample-2", Site: "linkedin", Title: "Frontend Developer", Company: "Blue Harbor",
		Location: "New York, NY", JobType: "fulltime",
		MinAmount: amount(85000), MaxAmount: amount(115000), Currency: "USD",
		JobURL: "https://www.linkedin.com/jobs/", Description: "Own the customer facing web app.",
	},
	{
		ID: "sample-3", Site: "glassdoor", Title: "Data Analyst", Company: "Cedar Analytics",
		Location: "Austin, TX", JobType: "contract",
		JobURL: "https://www.glassdoor.com/", Description: "Turn product data into weekly insights.",
	},
	{
		ID: "sample-4", Site: "indeed", Title: "DevOps Engineer", Company: "Summit Cloud",
		Location: "Remote", JobType: "fulltime", IsRemote: true,
		MinAmount: amount(110000), MaxAmount: amount(145000), Currency: "USD",
		JobURL: "https://www.indeed.com/", Description: "Run CI/CD and Kubernetes clusters.",
	},
	{
		ID: "sample-5", Site: "linkedin", Title: "Product Designer", Company: "Lumen Studio",
		Location: "San Francisco, CA", JobType: "parttime",
		JobURL: "https://www.linkedin.com/jobs/", Description: "Design flows for a hiring platform.",
	},
}

// SampleJobs returns the demo listings shown when the scraper is down. When
// term is set, listings whose title contains it come first.
func SampleJobs(term string) []domain.JobListing {
	out := make([]domain.JobListing, 0, len(sampleJobs))
	rest := make([]domain.JobListing, 0, len(sampleJobs))
	term = strings.ToLower(strings.TrimSpace(term))
	for _, j := range sampleJobs {
		if term != "" && strings.Contains(strings.ToLower(j.Title), term) {
			out = append(out, j)
			continue
		}
		rest = append(rest, j)
	}
	return append(out, rest...)
}
