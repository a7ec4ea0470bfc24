package jobsource

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/parsing"
)

// feedListKeys are the object keys under which feeds commonly nest their job list
var feedListKeys = []string{"jobs", "results", "data", "items"}

// fieldAliases maps alternative feed field names onto JobPosting fields
var fieldAliases = map[string]string{
	"name":         "title",
	"position":     "title",
	"company_name": "company",
	"employer":     "company",
	"link":         "url",
	"apply_url":    "url",
	"skills":       "requirements",
	"tags":         "requirements",
	"body":         "description",
	"summary":      "description",
}

// decodeFeed turns a JSON feed (a list of records, or an object holding one) into postings
func decodeFeed(body []byte) ([]domain.JobPosting, error) {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	records, err := feedRecords(raw)
	if err != nil {
		return nil, err
	}

	jobs := make([]domain.JobPosting, 0, len(records))
	for _, record := range records {
		job, err := decodeRecord(record)
		if err != nil {
			return nil, err
		}
		if job.Title == "" && job.Description == "" {
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func feedRecords(raw interface{}) ([]map[string]interface{}, error) {
	var list []interface{}

	switch v := raw.(type) {
	case []interface{}:
		list = v
	case map[string]interface{}:
		for _, key := range feedListKeys {
			if nested, ok := v[key].([]interface{}); ok {
				list = nested
				break
			}
		}
		if list == nil {
			return nil, fmt.Errorf("feed object has no job list (looked for %s)", strings.Join(feedListKeys, ", "))
		}
	default:
		return nil, fmt.Errorf("unexpected feed type %T", raw)
	}

	records := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if record, ok := item.(map[string]interface{}); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// decodeRecord maps one loosely typed feed record onto a JobPosting
func decodeRecord(record map[string]interface{}) (domain.JobPosting, error) {
	normalized := make(map[string]interface{}, len(record))
	for key, value := range record {
		key = strings.ToLower(key)
		if _, exists := normalized[key]; !exists {
			normalized[key] = value
		}
	}
	for alias, field := range fieldAliases {
		if value, ok := normalized[alias]; ok {
			if _, exists := normalized[field]; !exists {
				normalized[field] = value
			}
		}
	}

	var job domain.JobPosting
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc("\n"),
		WeaklyTypedInput: true,
		Result:           &job,
	})
	if err != nil {
		return job, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return job, fmt.Errorf("failed to decode job record: %w", err)
	}

	return finishPosting(job, domain.SourceRemote), nil
}

// finishPosting trims fields, derives missing requirements from the description and assigns a stable ID
func finishPosting(job domain.JobPosting, source string) domain.JobPosting {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	job.Location = strings.TrimSpace(job.Location)
	job.Description = strings.TrimSpace(job.Description)

	requirements := make([]string, 0, len(job.Requirements))
	for _, r := range job.Requirements {
		if r = strings.TrimSpace(r); r != "" {
			requirements = append(requirements, r)
		}
	}
	if len(requirements) == 0 {
		requirements = parsing.ParseRequirements(job.Description)
	}
	job.Requirements = requirements

	if job.ID == "" {
		job.ID = postingID(job)
	}
	job.Source = source
	return job
}

// postingID derives a deterministic ID so cached listings keep the same identity
func postingID(job domain.JobPosting) string {
	seed := job.URL
	if seed == "" {
		seed = job.Title + "|" + job.Company + "|" + job.Location
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}
