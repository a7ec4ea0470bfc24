package jobsource

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/skillmatch/backend/internal/domain"
)

// Selectors for job board listing pages
const (
	cardSelector        = ".job-card, [data-job]"
	titleSelector       = ".job-title, .title, h2, h3"
	companySelector     = ".job-company, .company"
	locationSelector    = ".job-location, .location"
	descriptionSelector = ".job-description, .description"
	requirementSelector = ".requirements li, .job-requirements li"
)

// parseBoard extracts job cards from an HTML listing page
func parseBoard(body []byte, pageURL string) ([]domain.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, _ := url.Parse(pageURL)

	jobs := make([]domain.JobPosting, 0)
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		job := domain.JobPosting{
			ID:          firstAttr(card, "data-job-id", "data-job", "id"),
			Title:       selectionText(card.Find(titleSelector).First()),
			Company:     selectionText(card.Find(companySelector).First()),
			Location:    selectionText(card.Find(locationSelector).First()),
			Description: blockText(card.Find(descriptionSelector).First()),
			URL:         resolveLink(base, card.Find("a[href]").First()),
		}

		card.Find(requirementSelector).Each(func(_ int, item *goquery.Selection) {
			if text := selectionText(item); text != "" {
				job.Requirements = append(job.Requirements, text)
			}
		})

		if job.Title == "" {
			return
		}
		jobs = append(jobs, finishPosting(job, domain.SourceRemote))
	})

	return jobs, nil
}

func selectionText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// blockText keeps line structure so the requirements parser can find section headers
func blockText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}

	var lines []string
	s.Find("p, li, h4, h5, br").Each(func(_ int, el *goquery.Selection) {
		if text := selectionText(el); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return selectionText(s)
	}
	return strings.Join(lines, "\n")
}

func firstAttr(s *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := s.Attr(name); ok && strings.TrimSpace(v) != "" && v != "true" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func resolveLink(base *url.URL, a *goquery.Selection) string {
	href, ok := a.Attr("href")
	if !ok || href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
