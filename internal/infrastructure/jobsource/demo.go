package jobsource

import (
	"github.com/skillmatch/backend/internal/domain"
)

// demoJobs is served when no job board is configured or the board is unavailable
var demoJobs = []domain.JobPosting{
	{
		ID:           "demo-backend-go",
		Title:        "Backend Engineer (Go)",
		Company:      "Northwind Systems",
		Location:     "Remote",
		Description:  "Design and operate high-throughput APIs for our logistics platform.",
		Requirements: []string{"go", "postgresql", "docker", "kubernetes", "rest api", "microservices"},
	},
	{
		ID:           "demo-fullstack-js",
		Title:        "Full Stack Developer",
		Company:      "Brightleaf Labs",
		Location:     "Berlin, Germany",
		Description:  "Build customer-facing features end to end across our web application.",
		Requirements: []string{"javascript", "typescript", "react", "node.js", "mongodb", "css", "git"},
	},
	{
		ID:           "demo-data-scientist",
		Title:        "Data Scientist",
		Company:      "Meridian Analytics",
		Location:     "New York, NY",
		Description:  "Turn product data into forecasting and recommendation models.",
		Requirements: []string{"python", "pandas", "scikit-learn", "machine learning", "sql", "statistics"},
	},
	{
		ID:           "demo-devops",
		Title:        "DevOps Engineer",
		Company:      "Cloudrift",
		Location:     "London, UK",
		Description:  "Own our infrastructure as code and continuous delivery pipelines.",
		Requirements: []string{"aws", "terraform", "kubernetes", "ci/cd", "linux", "prometheus", "bash"},
	},
	{
		ID:           "demo-mobile",
		Title:        "Mobile Developer",
		Company:      "Pocketwise",
		Location:     "Austin, TX",
		Description:  "Ship our personal finance app on iOS and Android.",
		Requirements: []string{"react native", "ios", "android", "typescript", "firebase"},
	},
	{
		ID:           "demo-java",
		Title:        "Java Developer",
		Company:      "Ledgerline",
		Location:     "Toronto, Canada",
		Description:  "Maintain payment services with a strong focus on correctness.",
		Requirements: []string{"java", "spring boot", "hibernate", "mysql", "junit", "kafka"},
	},
	{
		ID:           "demo-ml-engineer",
		Title:        "Machine Learning Engineer",
		Company:      "Synapse AI",
		Location:     "San Francisco, CA",
		Description:  "Train and deploy deep learning models to production.",
		Requirements: []string{"python", "pytorch", "tensorflow", "deep learning", "docker", "aws"},
	},
	{
		ID:           "demo-qa",
		Title:        "QA Automation Engineer",
		Company:      "Trustmark Software",
		Location:     "Remote",
		Description:  "Grow our automated test suites across web and API layers.",
		Requirements: []string{"selenium", "cypress", "python", "automation testing", "postman", "jira"},
	},
}

// DemoJobs returns a copy of the demonstration dataset
func DemoJobs() []domain.JobPosting {
	jobs := make([]domain.JobPosting, len(demoJobs))
	for i, job := range demoJobs {
		job.Requirements = append([]string(nil), job.Requirements...)
		job.Source = domain.SourceDemo
		jobs[i] = job
	}
	return jobs
}
