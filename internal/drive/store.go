// Package drive stores resume files on Google Drive and hands out shareable links.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Store uploads files to a Drive folder and deletes them by shareable link.
type Store struct {
	service  *drive.Service
	folderID string
}

// NewStore creates a Store from a service-account credentials file. Uploads
// land in folderID; an empty folderID uses the service account's root.
func NewStore(ctx context.Context, credentialsFile, folderID string) (*Store, error) {
	service, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Store{service: service, folderID: folderID}, nil
}

// Upload stores the file and returns a link readable by anyone who has it.
func (s *Store) Upload(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: mimeType,
	}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}

	file, err := s.service.Files.Create(meta).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	_, err = s.service.Permissions.Create(file.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to share file: %w", err)
	}

	return fmt.Sprintf("https://drive.google.com/file/d/%s/view", file.Id), nil
}

// DeleteByURL removes the file a shareable link points at. A file that is
// already gone is not an error.
func (s *Store) DeleteByURL(ctx context.Context, fileURL string) error {
	fileID, err := FileIDFromURL(fileURL)
	if err != nil {
		return err
	}

	if err := s.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

var filePathIDPattern = regexp.MustCompile(`/(?:file/)?d/([a-zA-Z0-9_-]+)`)

// FileIDFromURL extracts the Drive file ID from a shareable link. Both the
// /file/d/<id>/view and ?id=<id> link forms are accepted.
func FileIDFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("invalid drive URL: %s", fileURL)
	}

	if m := filePathIDPattern.FindStringSubmatch(parsed.Path); m != nil {
		return m[1], nil
	}
	if id := parsed.Query().Get("id"); id != "" {
		return id, nil
	}

	// Bare file IDs show up in older records.
	trimmed := strings.Trim(parsed.Path, "/")
	if trimmed != "" && !strings.Contains(trimmed, "/") && parsed.RawQuery == "" {
		return trimmed, nil
	}

	return "", fmt.Errorf("no file ID found in drive URL: %s", fileURL)
}
