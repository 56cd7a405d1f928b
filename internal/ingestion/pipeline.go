package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/applytrack/internal/db"
	"github.com/jonathan/applytrack/internal/llm"
	"github.com/jonathan/applytrack/internal/types"
)

// Gateway is the AI boundary the pipeline fetches job details through.
type Gateway interface {
	FetchJobDescription(ctx context.Context, pageText string) (*llm.JobDetails, error)
}

// PageFetcher turns a posting URL into plain page text.
type PageFetcher interface {
	JobPageText(ctx context.Context, url string) (string, error)
}

// Default tuning for URL-mode ingestion. Both are overridable through the
// pipeline constructor so operators can adjust them per deployment.
const (
	DefaultConcurrency    = 4
	DefaultGatewayTimeout = 45 * time.Second
)

// Pipeline ingests batches of filled rows or posting URLs. Rows are processed
// independently: one row's failure never aborts or rolls back a sibling row.
type Pipeline struct {
	store          Store
	gateway        Gateway
	fetcher        PageFetcher
	concurrency    int
	gatewayTimeout time.Duration
}

// New creates a Pipeline. Non-positive concurrency or timeout values fall
// back to the defaults.
func New(store Store, gateway Gateway, fetcher PageFetcher, concurrency int, gatewayTimeout time.Duration) *Pipeline {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if gatewayTimeout <= 0 {
		gatewayTimeout = DefaultGatewayTimeout
	}
	return &Pipeline{
		store:          store,
		gateway:        gateway,
		fetcher:        fetcher,
		concurrency:    concurrency,
		gatewayTimeout: gatewayTimeout,
	}
}

// BulkAddFromRows ingests filled-form rows. Rows that fail validation are
// counted as failed with the offending fields named; they are never silently
// omitted. Rows without a user column use defaultUserRef, which may be a user
// ID or the "all" sentinel.
func (p *Pipeline) BulkAddFromRows(ctx context.Context, defaultUserRef string, rows []RawRow) (*Summary, error) {
	summary := &Summary{}

	for i, row := range rows {
		candidate, err := NormalizeRow(row, defaultUserRef)
		if err != nil {
			summary.recordFailure(RowFailure{
				Index:  i,
				Input:  row["company"],
				Kind:   FailureValidation,
				Reason: err.Error(),
			})
			continue
		}

		created, failure := p.persistCandidate(ctx, candidate)
		if failure != nil {
			failure.Index = i
			failure.Input = candidate.Company
			summary.recordFailure(*failure)
			summary.Created += created
			continue
		}
		summary.recordSuccess(created)
	}

	return summary, nil
}

// BulkAddFromURLs ingests bare posting URLs for userRef (a user ID or the
// "all" sentinel). Rows whose URL fails to parse are dropped before any
// external call and reported under Dropped. Valid rows are dispatched to the
// gateway concurrently up to the fan-out limit, each under its own timeout;
// outcomes are attributed back to the original input order. A URL submitted
// twice creates two independent records: the pipeline does not deduplicate.
func (p *Pipeline) BulkAddFromURLs(ctx context.Context, userRef string, urls []string) (*Summary, error) {
	type outcome struct {
		processed bool
		created   int
		failure   *RowFailure
	}
	outcomes := make([]outcome, len(urls))

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, rawURL := range urls {
		if err := ValidateURL(rawURL); err != nil {
			outcomes[i] = outcome{failure: &RowFailure{
				Index:  i,
				Input:  rawURL,
				Kind:   FailureValidation,
				Reason: err.Error(),
			}}
			continue
		}

		i, rawURL := i, rawURL
		g.Go(func() error {
			created, failure := p.processURL(ctx, userRef, rawURL)
			if failure != nil {
				failure.Index = i
				failure.Input = rawURL
			}
			outcomes[i] = outcome{processed: true, created: created, failure: failure}
			return nil
		})
	}

	// Workers never return errors; every failure is captured in its outcome.
	_ = g.Wait()

	summary := &Summary{}
	for _, o := range outcomes {
		switch {
		case !o.processed && o.failure != nil:
			summary.recordDropped(*o.failure)
		case o.failure != nil:
			summary.recordFailure(*o.failure)
			summary.Created += o.created
		default:
			summary.recordSuccess(o.created)
		}
	}
	return summary, nil
}

// processURL handles one URL row: fetch the page, extract job details through
// the gateway, and persist one application per resolved owner. The whole row
// runs under the per-row gateway timeout.
func (p *Pipeline) processURL(ctx context.Context, userRef, rawURL string) (int, *RowFailure) {
	rowCtx, cancel := context.WithTimeout(ctx, p.gatewayTimeout)
	defer cancel()

	pageText, err := p.fetcher.JobPageText(rowCtx, rawURL)
	if err != nil {
		return 0, &RowFailure{Kind: FailureGateway, Reason: fmt.Sprintf("page fetch failed: %v", err)}
	}

	details, err := p.gateway.FetchJobDescription(rowCtx, pageText)
	if err != nil {
		return 0, &RowFailure{Kind: FailureGateway, Reason: err.Error()}
	}

	candidate := candidateFromDetails(details, rawURL, userRef)
	return p.persistCandidate(ctx, candidate)
}

// candidateFromDetails builds a candidate from gateway output, substituting
// placeholders where the gateway could not infer a field.
func candidateFromDetails(details *llm.JobDetails, rawURL, userRef string) *Candidate {
	c := &Candidate{
		UserRef:         userRef,
		Company:         details.Company,
		JobTitle:        details.JobTitle,
		Locations:       details.Locations,
		JobURL:          rawURL,
		JobType:         details.JobType,
		Category:        details.Category,
		WorkArrangement: details.WorkArrangement,
		Description:     details.Description,
		Status:          types.StatusYetToApply,
	}
	if c.Company == "" {
		c.Company = PlaceholderCompany
	}
	if c.JobTitle == "" {
		c.JobTitle = PlaceholderJobTitle
	}
	if len(c.Locations) == 0 {
		c.Locations = []string{"Unknown"}
	}
	if !types.ValidJobType(c.JobType) {
		c.JobType = types.TypeFullTime
	}
	if !types.ValidCategory(c.Category) {
		c.Category = types.CategoryOther
	}
	return c
}

// persistCandidate resolves the candidate's owners and writes one application
// per owner, each in its own independent transaction. It returns the number
// of records created; on failure the count still reflects writes that landed
// before the failure, since partial progress is never rolled back.
func (p *Pipeline) persistCandidate(ctx context.Context, c *Candidate) (int, *RowFailure) {
	owners, err := resolveOwners(ctx, p.store, c.UserRef)
	if err != nil {
		var re *ResolutionError
		if errors.As(err, &re) {
			return 0, &RowFailure{Kind: FailureResolution, Reason: re.Error()}
		}
		return 0, &RowFailure{Kind: FailurePersistence, Reason: err.Error()}
	}

	created := 0
	for _, owner := range owners {
		app := &db.Application{
			UserID:          owner,
			Company:         c.Company,
			JobTitle:        c.JobTitle,
			Locations:       db.StringArray(c.Locations),
			JobURL:          c.JobURL,
			JobDescription:  c.Description,
			JobType:         c.JobType,
			Category:        c.Category,
			WorkArrangement: c.WorkArrangement,
			Status:          c.Status,
			Notes:           c.Notes,
		}
		if _, err := p.store.InsertApplication(ctx, app); err != nil {
			return created, &RowFailure{
				Kind:   FailurePersistence,
				Reason: fmt.Sprintf("insert failed after %d of %d records: %v", created, len(owners), err),
			}
		}
		created++
	}
	return created, nil
}
