package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/carteapp/carte-backend/internal/attachments/blob"
	"github.com/carteapp/carte-backend/internal/projects/domain"
	"github.com/carteapp/carte-backend/internal/projects/repository"
)

const (
	// PDFContentType is the only accepted upload media type.
	PDFContentType = "application/pdf"

	// ExtractingPlaceholder is stored as the section's text until the
	// asynchronous extraction finishes.
	ExtractingPlaceholder = "Extracting text from PDF..."
)

var (
	ErrNotPDF   = errors.New("please upload a PDF file")
	ErrTooLarge = errors.New("file size should be less than 10MB")
)

// Service handles per-section attachment uploads: validation, blob
// storage, and asynchronous text extraction.
type Service struct {
	projects *repository.ProjectRepository
	blobs    *blob.Store
	maxBytes int64
	baseURL  string
	log      *zap.Logger

	// extractTimeout bounds the background extraction write-back.
	extractTimeout time.Duration
}

// New creates an attachment service. baseURL is the public path prefix
// under which blob references are served, e.g. "/api/v1/attachments".
func New(projects *repository.ProjectRepository, blobs *blob.Store, maxBytes int64, baseURL string, log *zap.Logger) *Service {
	return &Service{
		projects:       projects,
		blobs:          blobs,
		maxBytes:       maxBytes,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		log:            log,
		extractTimeout: 30 * time.Second,
	}
}

// Upload validates and stores a single file for a section. On acceptance
// the section's attachment is replaced (discarding any previous blob and
// its cached text) and text extraction runs in the background; extraction
// failure is recorded in the cached text, never surfaced as an upload
// error. Rejections leave the document untouched.
func (s *Service) Upload(ctx context.Context, projectID, section, filename, contentType string, size int64, r io.Reader) (*domain.Attachment, error) {
	if !domain.ValidSection(section) {
		return nil, domain.ErrUnknownSection
	}
	if contentType != PDFContentType {
		return nil, ErrNotPDF
	}
	if size > s.maxBytes {
		return nil, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	// The project must exist before we commit any bytes.
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	prev, _ := p.SectionAttachment(section)

	ref := s.blobs.Put(filename, contentType, data)
	att := &domain.Attachment{
		Name: filename,
		URL:  s.blobURL(ref),
		Type: contentType,
	}

	if _, err := s.projects.SetAttachment(ctx, projectID, section, att, ExtractingPlaceholder); err != nil {
		s.blobs.Delete(ref)
		return nil, err
	}

	// Replacing an attachment discards the previous reference.
	if prev != nil {
		s.blobs.Delete(s.refFromURL(prev.URL))
	}

	go s.extract(projectID, section, att.URL, data)

	return att, nil
}

// extract runs off the request goroutine; its outcome lands in the
// section's cached text either way.
func (s *Service) extract(projectID, section, attachmentURL string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), s.extractTimeout)
	defer cancel()

	text, err := extractPDFText(data)
	if err != nil {
		s.log.Warn("pdf extraction failed",
			zap.String("project_id", projectID),
			zap.String("section", section),
			zap.Error(err))
		text = fmt.Sprintf("Error extracting PDF content: %s", err)
	}

	if err := s.projects.SetAttachmentText(ctx, projectID, section, attachmentURL, text); err != nil {
		s.log.Warn("storing extracted text failed",
			zap.String("project_id", projectID),
			zap.String("section", section),
			zap.Error(err))
	}
}

// Remove clears the section's attachment and any cached extracted text.
// Removing from a section without an attachment is a no-op.
func (s *Service) Remove(ctx context.Context, projectID, section string) error {
	if !domain.ValidSection(section) {
		return domain.ErrUnknownSection
	}

	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}

	att, _ := p.SectionAttachment(section)
	if att == nil {
		return nil
	}

	if _, err := s.projects.SetAttachment(ctx, projectID, section, nil, ""); err != nil {
		return err
	}

	s.blobs.Delete(s.refFromURL(att.URL))
	return nil
}

// Blob resolves a blob reference to its stored bytes.
func (s *Service) Blob(ref string) (*blob.Blob, error) {
	return s.blobs.Get(ref)
}

func (s *Service) blobURL(ref string) string {
	return s.baseURL + "/" + ref
}

func (s *Service) refFromURL(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}
