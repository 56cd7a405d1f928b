package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/applytrack/internal/db"
	"github.com/jonathan/applytrack/internal/llm"
)

// createResumeRequest creates a resume from an uploaded PDF (as a data URI),
// LaTeX source, or both. An uploaded PDF has its text extracted through the
// AI gateway before the resume is stored.
type createResumeRequest struct {
	Name       string `json:"name" validate:"required,min=1"`
	PDFDataURI string `json:"pdf_data_uri"`
	Latex      string `json:"latex_source"`
}

// handleCreateResume stores a new resume for the user in the path.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req createResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if strings.TrimSpace(req.PDFDataURI) == "" && strings.TrimSpace(req.Latex) == "" {
		s.errorResponse(w, http.StatusBadRequest, "resume requires a PDF upload or LaTeX source")
		return
	}

	extractedText, err := s.ai.ExtractResumeText(r.Context(), req.PDFDataURI)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("text extraction failed: %v", err))
		return
	}

	var pdfURL string
	if s.files != nil && strings.TrimSpace(req.PDFDataURI) != "" {
		pdf, err := llm.DecodeDataURI(req.PDFDataURI)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		pdfURL, err = s.files.Upload(r.Context(), req.Name+".pdf", "application/pdf", pdf)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("failed to store PDF: %v", err))
			return
		}
	}

	resume := &db.Resume{
		UserID:        userID,
		Name:          req.Name,
		ExtractedText: extractedText,
		LatexSource:   req.Latex,
		PDFURL:        pdfURL,
	}
	id, err := s.store.InsertResume(r.Context(), resume)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	created, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListResumes returns a user's resumes with application counts.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	resumes, err := s.store.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resumes == nil {
		resumes = []db.Resume{}
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

// handleGetResume returns a single resume by ID.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "resume", ID: id}).Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

type updateResumeRequest struct {
	Name          string `json:"name" validate:"required,min=1"`
	ExtractedText string `json:"extracted_text"`
	Latex         string `json:"latex_source"`
}

// handleUpdateResume re-saves a resume's name and content.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	existing, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "resume", ID: id}).Error())
		return
	}

	var req updateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	existing.Name = req.Name
	existing.ExtractedText = req.ExtractedText
	existing.LatexSource = req.Latex
	if err := s.store.UpdateResume(r.Context(), existing); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteResume deletes a resume. Applications that referenced it keep
// their rows and simply lose the association. The compiled PDF, if stored
// externally, is removed as well; a missing file is not an error.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "resume", ID: id}).Error())
		return
	}

	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.files != nil && resume.PDFURL != "" {
		if err := s.files.DeleteByURL(r.Context(), resume.PDFURL); err != nil {
			// The database row is already gone; log-and-continue is all
			// that is left for the orphaned file.
			s.jsonResponse(w, http.StatusOK, map[string]string{
				"message": "Resume deleted; compiled PDF could not be removed",
			})
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Resume deleted"})
}

// handleCompileResume compiles a resume's LaTeX source to PDF, uploads the
// result to the file store when one is configured, and records the URL.
func (s *Server) handleCompileResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "resume", ID: id}).Error())
		return
	}
	if strings.TrimSpace(resume.LatexSource) == "" {
		s.errorResponse(w, http.StatusBadRequest, "resume has no LaTeX source to compile")
		return
	}

	pdf, logOutput, err := s.compiler.Compile(r.Context(), resume.LatexSource)
	if err != nil && pdf == nil {
		status := http.StatusUnprocessableEntity
		if !s.compiler.Available() {
			status = http.StatusServiceUnavailable
		}
		s.jsonResponse(w, status, map[string]string{
			"error": err.Error(),
			"log":   logOutput,
		})
		return
	}

	if s.files != nil {
		pdfURL, err := s.files.Upload(r.Context(), resume.Name+".pdf", "application/pdf", pdf)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("failed to store compiled PDF: %v", err))
			return
		}
		resume.PDFURL = pdfURL
		if err := s.store.UpdateResume(r.Context(), resume); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]string{"pdf_url": pdfURL})
		return
	}

	// No file store configured: return the PDF directly.
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
