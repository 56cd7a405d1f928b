package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/jonathan/applytrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records calls and returns canned responses.
type fakeClient struct {
	jsonResponse string
	pdfResponse  string
	err          error
	jsonCalls    int
	pdfCalls     int
	lastPrompt   string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.jsonCalls++
	f.lastPrompt = prompt
	return f.jsonResponse, f.err
}

func (f *fakeClient) GenerateFromPDF(_ context.Context, prompt string, _ []byte) (string, error) {
	f.pdfCalls++
	f.lastPrompt = prompt
	return f.pdfResponse, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestExtractKeywords_EmptyDescriptionSkipsGateway(t *testing.T) {
	client := &fakeClient{}
	g := NewGateway(client)

	for _, input := range []string{"", "   ", "\n\t"} {
		result, err := g.ExtractKeywords(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, []string{}, result.Keywords)
		assert.Equal(t, "", result.Suggestions)
	}

	assert.Equal(t, 0, client.jsonCalls, "empty input must never reach the client")
}

func TestExtractKeywords_Success(t *testing.T) {
	client := &fakeClient{
		jsonResponse: `{"keywords": ["Go", "PostgreSQL", "Kubernetes"], "suggestions": "Mention Go prominently."}`,
	}
	g := NewGateway(client)

	result, err := g.ExtractKeywords(context.Background(), "We need a Go engineer.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, result.Keywords)
	assert.Equal(t, "Mention Go prominently.", result.Suggestions)
	assert.Equal(t, 1, client.jsonCalls)
	assert.Contains(t, client.lastPrompt, "We need a Go engineer.")
}

func TestExtractKeywords_InvalidOutputRejected(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"suggestions": "missing keywords field"}`}
	g := NewGateway(client)

	_, err := g.ExtractKeywords(context.Background(), "We need a Go engineer.")
	require.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestScoreResume_EmptyContentSkipsGateway(t *testing.T) {
	client := &fakeClient{}
	g := NewGateway(client)

	result, err := g.ScoreResume(context.Background(), ResumeContent{}, "a job description")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, EmptyResumeScoreSummary, result.Summary)
	assert.Equal(t, 0, client.jsonCalls, "empty resume must never reach the client")

	// Whitespace-only content counts as empty too.
	result, err = g.ScoreResume(context.Background(), ResumeContent{Text: "   \n"}, "a job description")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, client.jsonCalls)
}

func TestScoreResume_EmptyDescriptionSkipsGateway(t *testing.T) {
	client := &fakeClient{}
	g := NewGateway(client)

	result, err := g.ScoreResume(context.Background(), ResumeContent{Text: "resume text"}, "  ")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, EmptyDescriptionScoreSummary, result.Summary)
	assert.Equal(t, 0, client.jsonCalls)
}

func TestScoreResume_Success(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"score": 82, "summary": "Strong match on **Go** and **Postgres**."}`}
	g := NewGateway(client)

	result, err := g.ScoreResume(context.Background(), ResumeContent{Text: "Go engineer"}, "Go role")
	require.NoError(t, err)
	assert.Equal(t, 82, result.Score)
	assert.Equal(t, "Strong match on **Go** and **Postgres**.", result.Summary)
}

func TestScoreResume_LatexOnlyContent(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"score": 50, "summary": "Partial match."}`}
	g := NewGateway(client)

	result, err := g.ScoreResume(context.Background(), ResumeContent{Latex: `\section{Experience}`}, "Go role")
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
	assert.Contains(t, client.lastPrompt, `\section{Experience}`)
}

func TestScoreResume_ClampsOutOfRangeScores(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
	}{
		{"above range", `{"score": 140, "summary": "s"}`, 100},
		{"below range", `{"score": -5, "summary": "s"}`, 0},
		{"fractional rounds", `{"score": 87.5, "summary": "s"}`, 88},
		{"fractional rounds down", `{"score": 61.2, "summary": "s"}`, 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGateway(&fakeClient{jsonResponse: tt.response})
			result, err := g.ScoreResume(context.Background(), ResumeContent{Text: "r"}, "jd")
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Score)
		})
	}
}

func TestFetchJobDescription_EmptyPageTextSkipsGateway(t *testing.T) {
	client := &fakeClient{}
	g := NewGateway(client)

	details, err := g.FetchJobDescription(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, &JobDetails{}, details)
	assert.Equal(t, 0, client.jsonCalls)
}

func TestFetchJobDescription_Success(t *testing.T) {
	client := &fakeClient{jsonResponse: `{
		"company": "Acme",
		"job_title": "Backend Engineer",
		"locations": ["New York, NY", "Remote"],
		"description": "Build services in Go.",
		"job_type": "Full-Time",
		"category": "SWE",
		"work_arrangement": "Hybrid"
	}`}
	g := NewGateway(client)

	details, err := g.FetchJobDescription(context.Background(), "some page text")
	require.NoError(t, err)
	assert.Equal(t, "Acme", details.Company)
	assert.Equal(t, "Backend Engineer", details.JobTitle)
	assert.Equal(t, []string{"New York, NY", "Remote"}, details.Locations)
	assert.Equal(t, types.TypeFullTime, details.JobType)
	assert.Equal(t, types.CategorySWE, details.Category)
	assert.Equal(t, types.ArrangementHybrid, details.WorkArrangement)
}

func TestFetchJobDescription_CoercesUnknownEnums(t *testing.T) {
	client := &fakeClient{jsonResponse: `{
		"company": "Acme",
		"job_title": "Backend Engineer",
		"description": "Build services in Go.",
		"job_type": "Apprenticeship",
		"category": "Platform",
		"work_arrangement": "Nomadic"
	}`}
	g := NewGateway(client)

	details, err := g.FetchJobDescription(context.Background(), "some page text")
	require.NoError(t, err)
	assert.Equal(t, types.TypeFullTime, details.JobType, "unknown type coerces to Full-Time")
	assert.Equal(t, types.CategoryOther, details.Category, "unknown category coerces to Other")
	assert.Equal(t, types.WorkArrangement(""), details.WorkArrangement)
}

func TestFetchJobDescription_MissingRequiredFieldsRejected(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"company": "Acme"}`}
	g := NewGateway(client)

	_, err := g.FetchJobDescription(context.Background(), "some page text")
	assert.Error(t, err)
}

func TestFetchJobDescription_ClientError(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("rate limited")}
	g := NewGateway(client)

	_, err := g.FetchJobDescription(context.Background(), "some page text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestExtractResumeText_EmptyInputSkipsGateway(t *testing.T) {
	client := &fakeClient{}
	g := NewGateway(client)

	text, err := g.ExtractResumeText(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.Equal(t, 0, client.pdfCalls)
}

func TestExtractResumeText_Success(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake")
	uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes)
	client := &fakeClient{pdfResponse: "  Jane Doe\nSoftware Engineer  "}
	g := NewGateway(client)

	text, err := g.ExtractResumeText(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSoftware Engineer", text)
	assert.Equal(t, 1, client.pdfCalls)
}

func TestExtractResumeText_MalformedDataURI(t *testing.T) {
	g := NewGateway(&fakeClient{})

	tests := []string{
		"not-a-data-uri",
		"data:application/pdf;base64",         // no comma
		"data:application/pdf,plain-not-b64",  // not base64-encoded
		"data:application/pdf;base64,@@@@@@@", // invalid base64 payload
	}
	for _, uri := range tests {
		_, err := g.ExtractResumeText(context.Background(), uri)
		assert.Error(t, err, "uri %q", uri)
	}
}

func TestDecodeDataURI(t *testing.T) {
	data := []byte("hello")
	uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data)

	got, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
