package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/applytrack/internal/ingestion"
	"github.com/jonathan/applytrack/internal/types"
)

// bulkRowsRequest is the JSON shape for filled-form bulk ingestion.
type bulkRowsRequest struct {
	// UserID is a user ID or the "all" sentinel; rows may override it with
	// their own "user" column.
	UserID string             `json:"user_id" validate:"required"`
	Rows   []ingestion.RawRow `json:"rows" validate:"required,min=1"`
}

// bulkURLsRequest is the JSON shape for URL-mode bulk ingestion.
type bulkURLsRequest struct {
	UserID string   `json:"user_id" validate:"required"`
	URLs   []string `json:"urls" validate:"required,min=1"`
}

// handleBulkAdd ingests filled-form rows. The body is either JSON or, with a
// text/csv content type, a raw CSV upload (user_id then comes from the query).
func (s *Server) handleBulkAdd(w http.ResponseWriter, r *http.Request) {
	var userRef string
	var rows []ingestion.RawRow

	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/csv") {
		userRef = r.URL.Query().Get("user_id")
		if userRef == "" {
			userRef = types.AllUsersSentinel
		}

		parsed, err := ingestion.ParseCSV(r.Body)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		rows = parsed
	} else {
		var req bulkRowsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := s.validator.Struct(req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
			return
		}
		userRef = req.UserID
		rows = req.Rows
	}

	summary, err := s.pipeline.BulkAddFromRows(r.Context(), userRef, rows)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, bulkStatus(summary), summary)
}

// handleBulkAddURLs ingests bare posting URLs through the AI gateway.
func (s *Server) handleBulkAddURLs(w http.ResponseWriter, r *http.Request) {
	var req bulkURLsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	summary, err := s.pipeline.BulkAddFromURLs(r.Context(), req.UserID, req.URLs)
	if err != nil {
		var be *ingestion.BatchError
		if errors.As(err, &be) {
			s.errorResponse(w, http.StatusBadRequest, be.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, bulkStatus(summary), summary)
}

// bulkStatus returns 200 when at least one row succeeded and 422 when every
// attempted row failed. The summary body carries the per-row detail either way.
func bulkStatus(summary *ingestion.Summary) int {
	if summary.Attempted > 0 && summary.Succeeded == 0 {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}
