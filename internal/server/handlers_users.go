package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/applytrack/internal/db"
)

// createUserRequest is the admin-add shape: a user without credentials.
type createUserRequest struct {
	FirstName    string   `json:"first_name" validate:"required,min=1"`
	LastName     string   `json:"last_name"`
	Emails       []string `json:"emails" validate:"required,min=1,dive,email"`
	DefaultEmail string   `json:"default_email" validate:"required,email"`
}

// handleCreateUser adds a user without password credentials.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	userID, err := s.store.CreateUser(r.Context(), req.FirstName, req.LastName, req.Emails, req.DefaultEmail)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, toAPIUser(user))
}

// handleListUsers returns all users.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := make([]any, 0, len(users))
	for i := range users {
		response = append(response, toAPIUser(&users[i]))
	}
	s.jsonResponse(w, http.StatusOK, response)
}

// handleGetUser returns a single user by ID.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrUserNotFound{UserID: userID}).Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, toAPIUser(user))
}

// handleUpdateUser updates a user's name parts and email set.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if !containsEmail(req.Emails, req.DefaultEmail) {
		s.errorResponse(w, http.StatusBadRequest, "default email is not in the email list")
		return
	}

	user := &db.User{
		ID:           userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Emails:       db.StringArray(req.Emails),
		DefaultEmail: req.DefaultEmail,
	}
	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	updated, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, toAPIUser(updated))
}

// handleDeleteUser deletes a user; owned applications and resumes go with it.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteUser(r.Context(), userID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// handleUserStats returns the per-status application breakdown for a user.
func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	counts, err := s.store.CountApplicationsByStatus(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if counts == nil {
		counts = []db.StatusCount{}
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"total":     total,
		"by_status": counts,
	})
}

// pathUUID parses a UUID path parameter, writing a 400 response on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

func containsEmail(emails []string, email string) bool {
	for _, e := range emails {
		if e == email {
			return true
		}
	}
	return false
}
