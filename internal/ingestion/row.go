package ingestion

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/applytrack/internal/types"
)

// RawRow is one unit of filled-form bulk input: a mapping of column name to
// raw string value, as parsed from a CSV upload or a pasted table.
type RawRow map[string]string

// Candidate is a normalized application record ready for user resolution and
// persistence. Candidates are transient; they exist only for the duration of
// one ingestion call.
type Candidate struct {
	UserRef         string
	Company         string
	JobTitle        string
	Locations       []string
	JobURL          string
	JobType         types.JobType
	Category        types.Category
	WorkArrangement types.WorkArrangement
	Description     string
	Notes           string
	Status          types.Status
}

// Placeholder values for URL-mode rows where the gateway cannot infer a field.
const (
	PlaceholderCompany  = "Unknown Company"
	PlaceholderJobTitle = "Unknown Role"
)

// NormalizeRow validates a filled-form row and produces a candidate, or a
// ValidationFailure naming every offending field. Normalization is pure:
// it trims whitespace and checks the closed enum sets, nothing else.
func NormalizeRow(row RawRow, defaultUserRef string) (*Candidate, error) {
	get := func(key string) string { return strings.TrimSpace(row[key]) }

	var bad []string

	company := get("company")
	if company == "" {
		bad = append(bad, "company")
	}

	jobTitle := get("job_title")
	if jobTitle == "" {
		bad = append(bad, "job_title")
	}

	locations := splitLocations(get("locations"))
	if len(locations) == 0 {
		bad = append(bad, "locations")
	}

	jobURL := get("url")
	if err := ValidateURL(jobURL); err != nil {
		bad = append(bad, "url")
	}

	jobType := types.JobType(get("job_type"))
	if !types.ValidJobType(jobType) {
		bad = append(bad, "job_type")
	}

	category := types.Category(get("category"))
	if !types.ValidCategory(category) {
		bad = append(bad, "category")
	}

	arrangement := types.WorkArrangement(get("work_arrangement"))
	if arrangement != "" && !types.ValidWorkArrangement(arrangement) {
		bad = append(bad, "work_arrangement")
	}

	status := types.Status(get("status"))
	if status == "" {
		status = types.StatusYetToApply
	} else if !types.ValidStatus(status) {
		bad = append(bad, "status")
	}

	if len(bad) > 0 {
		return nil, &ValidationFailure{Fields: bad}
	}

	userRef := get("user")
	if userRef == "" {
		userRef = defaultUserRef
	}

	return &Candidate{
		UserRef:         userRef,
		Company:         company,
		JobTitle:        jobTitle,
		Locations:       locations,
		JobURL:          jobURL,
		JobType:         jobType,
		Category:        category,
		WorkArrangement: arrangement,
		Description:     get("description"),
		Notes:           get("notes"),
		Status:          status,
	}, nil
}

// ValidateURL checks that s is a syntactically well-formed http(s) URL.
func ValidateURL(s string) error {
	parsed, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", s, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: missing http(s) scheme", s)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", s)
	}
	return nil
}

// splitLocations splits a locations cell on semicolons, dropping empties.
func splitLocations(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
