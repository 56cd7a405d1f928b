package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/applytrack/internal/db"
	"github.com/jonathan/applytrack/internal/llm"
	"github.com/jonathan/applytrack/internal/types"
)

// DBClient is the persistence surface the handlers depend on. db.DB satisfies
// it; tests substitute an in-memory implementation.
type DBClient interface {
	CreateUser(ctx context.Context, firstName, lastName string, emails []string, defaultEmail string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	ListUsers(ctx context.Context) ([]db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, u *db.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	InsertApplication(ctx context.Context, a *db.Application) (uuid.UUID, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*db.Application, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]db.Application, error)
	UpdateApplication(ctx context.Context, a *db.Application) error
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status types.Status) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error
	CountApplicationsByStatus(ctx context.Context, userID uuid.UUID) ([]db.StatusCount, error)

	InsertResume(ctx context.Context, r *db.Resume) (uuid.UUID, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	UpdateResume(ctx context.Context, r *db.Resume) error
	DeleteResume(ctx context.Context, id uuid.UUID) error
}

// AIClient is the AI gateway surface the handlers depend on. llm.Gateway
// satisfies it.
type AIClient interface {
	FetchJobDescription(ctx context.Context, pageText string) (*llm.JobDetails, error)
	ExtractResumeText(ctx context.Context, pdfDataURI string) (string, error)
	ScoreResume(ctx context.Context, content llm.ResumeContent, jobDescription string) (*llm.ScoreResult, error)
	ExtractKeywords(ctx context.Context, jobDescription string) (*llm.KeywordResult, error)
}

// FileStore is the file storage surface for resume PDFs. drive.Store
// satisfies it; a nil FileStore disables uploads.
type FileStore interface {
	Upload(ctx context.Context, name, mimeType string, data []byte) (string, error)
	DeleteByURL(ctx context.Context, fileURL string) error
}
