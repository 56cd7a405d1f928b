package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/applytrack/internal/db"
	"github.com/jonathan/applytrack/internal/types"
)

// applicationRequest is the create/update shape for a single application.
type applicationRequest struct {
	Company         string     `json:"company" validate:"required,min=1"`
	JobTitle        string     `json:"job_title" validate:"required,min=1"`
	Locations       []string   `json:"locations" validate:"required,min=1"`
	JobURL          string     `json:"job_url" validate:"required,url"`
	JobDescription  string     `json:"job_description"`
	JobType         string     `json:"job_type" validate:"required"`
	Category        string     `json:"category" validate:"required"`
	WorkArrangement string     `json:"work_arrangement"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
	ResumeID        *uuid.UUID `json:"resume_id"`
}

// toApplication validates the closed enum sets and builds a db record.
func (req *applicationRequest) toApplication(userID uuid.UUID) (*db.Application, error) {
	if !types.ValidJobType(types.JobType(req.JobType)) {
		return nil, &ErrValidation{Field: "job_type", Message: "unrecognized job type: " + req.JobType}
	}
	if !types.ValidCategory(types.Category(req.Category)) {
		return nil, &ErrValidation{Field: "category", Message: "unrecognized category: " + req.Category}
	}
	if req.WorkArrangement != "" && !types.ValidWorkArrangement(types.WorkArrangement(req.WorkArrangement)) {
		return nil, &ErrValidation{Field: "work_arrangement", Message: "unrecognized work arrangement: " + req.WorkArrangement}
	}
	status := types.Status(req.Status)
	if req.Status == "" {
		status = types.StatusYetToApply
	} else if !types.ValidStatus(status) {
		return nil, &ErrValidation{Field: "status", Message: "unrecognized status: " + req.Status}
	}

	return &db.Application{
		UserID:          userID,
		Company:         req.Company,
		JobTitle:        req.JobTitle,
		Locations:       db.StringArray(req.Locations),
		JobURL:          req.JobURL,
		JobDescription:  req.JobDescription,
		JobType:         types.JobType(req.JobType),
		Category:        types.Category(req.Category),
		WorkArrangement: types.WorkArrangement(req.WorkArrangement),
		Status:          status,
		Notes:           req.Notes,
		ResumeID:        req.ResumeID,
	}, nil
}

// handleCreateApplication creates one application for the user in the path.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req applicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := req.toApplication(userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id, err := s.store.InsertApplication(r.Context(), app)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	created, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListApplications returns a user's applications, newest first.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	apps, err := s.store.ListApplications(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if apps == nil {
		apps = []db.Application{}
	}
	s.jsonResponse(w, http.StatusOK, apps)
}

// handleGetApplication returns a single application by ID.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "application", ID: id}).Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

// handleUpdateApplication replaces the mutable fields of an application.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	existing, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "application", ID: id}).Error())
		return
	}

	var req applicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := req.toApplication(existing.UserID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	app.ID = id

	if err := s.store.UpdateApplication(r.Context(), app); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	updated, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleUpdateApplicationStatus moves an application along the pipeline.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := types.Status(req.Status)
	if !types.ValidStatus(status) {
		s.errorResponse(w, http.StatusBadRequest, "unrecognized status: "+req.Status)
		return
	}

	if err := s.store.UpdateApplicationStatus(r.Context(), id, status); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": req.Status})
}

// handleDeleteApplication deletes a single application.
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteApplication(r.Context(), id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Application deleted"})
}
