package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/applytrack/internal/types"
)

// EmptyResumeScoreSummary is returned when scoring is requested with no
// resume content. The gateway is never invoked in that case.
const EmptyResumeScoreSummary = "No resume content was provided, so the resume could not be scored against the job description."

// EmptyDescriptionScoreSummary is returned when scoring is requested with no
// job description.
const EmptyDescriptionScoreSummary = "No job description was provided, so the resume could not be scored."

// JobDetails is the structured result of a job-description fetch.
type JobDetails struct {
	Company         string                `json:"company"`
	JobTitle        string                `json:"job_title"`
	Locations       []string              `json:"locations"`
	Description     string                `json:"description"`
	JobType         types.JobType         `json:"job_type"`
	Category        types.Category        `json:"category"`
	WorkArrangement types.WorkArrangement `json:"work_arrangement"`
}

// ScoreResult is the result of scoring a resume against a job description.
type ScoreResult struct {
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}

// KeywordResult is the result of keyword extraction from a job description.
type KeywordResult struct {
	Keywords    []string `json:"keywords"`
	Suggestions string   `json:"suggestions"`
}

// ResumeContent carries resume material for scoring: extracted plain text,
// LaTeX source, or both.
type ResumeContent struct {
	Text  string `json:"text,omitempty"`
	Latex string `json:"latex,omitempty"`
}

// Empty reports whether the content has neither text nor LaTeX source.
func (rc ResumeContent) Empty() bool {
	return strings.TrimSpace(rc.Text) == "" && strings.TrimSpace(rc.Latex) == ""
}

func (rc ResumeContent) body() string {
	if strings.TrimSpace(rc.Text) != "" {
		return rc.Text
	}
	return rc.Latex
}

// Gateway exposes the four AI operations over a Client. Every operation
// short-circuits on empty input before any client call is made.
type Gateway struct {
	client Client
}

// NewGateway creates a Gateway backed by the given client.
func NewGateway(client Client) *Gateway {
	return &Gateway{client: client}
}

// FetchJobDescription extracts structured job details from fetched page text.
// Empty page text returns empty details without invoking the client.
func (g *Gateway) FetchJobDescription(ctx context.Context, pageText string) (*JobDetails, error) {
	if strings.TrimSpace(pageText) == "" {
		return &JobDetails{}, nil
	}

	prompt := BuildExtractionPrompt(jobDetailsSchema(), pageText)
	raw, err := g.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job description: %w", err)
	}
	if err := validateJSONString(jobDetailsJSONSchema, raw); err != nil {
		return nil, err
	}

	var details JobDetails
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return nil, fmt.Errorf("failed to parse job details: %w", err)
	}

	// The model may return values outside the closed sets; coerce rather
	// than fail the row.
	if !types.ValidJobType(details.JobType) {
		details.JobType = types.TypeFullTime
	}
	if !types.ValidCategory(details.Category) {
		details.Category = types.CategoryOther
	}
	if !types.ValidWorkArrangement(details.WorkArrangement) {
		details.WorkArrangement = ""
	}

	return &details, nil
}

// ExtractResumeText extracts plain text from a resume PDF supplied as a data URI.
// Empty input returns an empty string without invoking the client.
func (g *Gateway) ExtractResumeText(ctx context.Context, pdfDataURI string) (string, error) {
	if strings.TrimSpace(pdfDataURI) == "" {
		return "", nil
	}

	pdf, err := DecodeDataURI(pdfDataURI)
	if err != nil {
		return "", err
	}

	text, err := g.client.GenerateFromPDF(ctx, resumeTextPrompt, pdf)
	if err != nil {
		return "", fmt.Errorf("failed to extract resume text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ScoreResume scores resume content against a job description, returning a
// score in [0,100] and a one-sentence rationale. Empty resume content or an
// empty job description short-circuits to score 0 without invoking the client.
func (g *Gateway) ScoreResume(ctx context.Context, content ResumeContent, jobDescription string) (*ScoreResult, error) {
	if content.Empty() {
		return &ScoreResult{Score: 0, Summary: EmptyResumeScoreSummary}, nil
	}
	if strings.TrimSpace(jobDescription) == "" {
		return &ScoreResult{Score: 0, Summary: EmptyDescriptionScoreSummary}, nil
	}

	input := fmt.Sprintf("Job description:\n%s\n\nResume:\n%s", jobDescription, content.body())
	prompt := BuildExtractionPrompt(scoreSchema(), input)
	raw, err := g.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to score resume: %w", err)
	}
	if err := validateJSONString(scoreJSONSchema, raw); err != nil {
		return nil, err
	}

	// The schema admits any number, so the model may return a fractional
	// score; round it rather than fail the call.
	var parsed struct {
		Score   float64 `json:"score"`
		Summary string  `json:"summary"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse score: %w", err)
	}

	result := &ScoreResult{Score: int(math.Round(parsed.Score)), Summary: parsed.Summary}
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}

	return result, nil
}

// ExtractKeywords extracts resume keywords from a job description.
// An empty description returns an empty result without invoking the client.
func (g *Gateway) ExtractKeywords(ctx context.Context, jobDescription string) (*KeywordResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return &KeywordResult{Keywords: []string{}, Suggestions: ""}, nil
	}

	prompt := BuildExtractionPrompt(keywordsSchema(), jobDescription)
	raw, err := g.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to extract keywords: %w", err)
	}
	if err := validateJSONString(keywordsJSONSchema, raw); err != nil {
		return nil, err
	}

	var result KeywordResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to parse keywords: %w", err)
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}

	return &result, nil
}

// DecodeDataURI decodes a base64 data URI ("data:application/pdf;base64,...").
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("not a data URI")
	}
	idx := strings.Index(uri, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URI: missing comma separator")
	}
	meta, payload := uri[len("data:"):idx], uri[idx+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URI encoding (expected base64)")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI: %w", err)
	}
	return data, nil
}
