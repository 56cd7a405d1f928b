package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/applytrack/internal/types"
)

// User represents a stored user account. A user owns one or more email
// addresses; exactly one of them is the default.
type User struct {
	ID           uuid.UUID   `json:"id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name,omitempty"`
	Emails       StringArray `json:"emails"`
	DefaultEmail string      `json:"default_email"`
	PasswordHash string      `json:"-" db:"password_hash"` // Never serialize to JSON
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Application represents a tracked job application.
type Application struct {
	ID              uuid.UUID             `json:"id"`
	UserID          uuid.UUID             `json:"user_id"`
	Company         string                `json:"company"`
	JobTitle        string                `json:"job_title"`
	Locations       StringArray           `json:"locations"` // JSONB array
	JobURL          string                `json:"job_url"`
	JobDescription  string                `json:"job_description,omitempty"`
	JobType         types.JobType         `json:"job_type"`
	Category        types.Category        `json:"category"`
	WorkArrangement types.WorkArrangement `json:"work_arrangement,omitempty"`
	Status          types.Status          `json:"status"`
	Notes           string                `json:"notes,omitempty"`
	ResumeID        *uuid.UUID            `json:"resume_id,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// Resume represents a stored resume. At least one of ExtractedText and
// LatexSource is present.
type Resume struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	LatexSource   string    `json:"latex_source,omitempty"`
	PDFURL        string    `json:"pdf_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	// ApplicationCount is derived: the number of applications referencing
	// this resume. Populated by list/get queries, never written.
	ApplicationCount int `json:"application_count"`
}

// StatusCount is one bucket of the per-status application breakdown.
type StatusCount struct {
	Status types.Status `json:"status"`
	Count  int          `json:"count"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	switch source := src.(type) {
	case []byte:
		return json.Unmarshal(source, a)
	case string:
		return json.Unmarshal([]byte(source), a)
	default:
		return errors.New("unsupported source type for StringArray")
	}
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
