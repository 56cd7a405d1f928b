package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/applytrack/internal/llm"
)

type keywordsRequest struct {
	JobDescription string `json:"job_description"`
}

// handleExtractKeywords extracts resume keywords from a job description.
// An empty description returns an empty result without touching the gateway.
func (s *Server) handleExtractKeywords(w http.ResponseWriter, r *http.Request) {
	var req keywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.ai.ExtractKeywords(r.Context(), req.JobDescription)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

type scoreRequest struct {
	Text           string `json:"text"`
	Latex          string `json:"latex"`
	JobDescription string `json:"job_description"`
}

// handleScoreResume scores resume content against a job description.
func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content := llm.ResumeContent{Text: req.Text, Latex: req.Latex}
	result, err := s.ai.ScoreResume(r.Context(), content, req.JobDescription)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
