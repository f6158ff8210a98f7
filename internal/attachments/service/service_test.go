package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carteapp/carte-backend/internal/attachments/blob"
	"github.com/carteapp/carte-backend/internal/projects/domain"
	"github.com/carteapp/carte-backend/internal/projects/repository"
)

const maxTestBytes = 10 * 1024 * 1024

func newTestService(t *testing.T) (*Service, *repository.ProjectRepository, *blob.Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	projects := repository.NewProjectRepository(client)
	blobs := blob.NewStore(time.Hour)
	svc := New(projects, blobs, maxTestBytes, "/api/v1/attachments", zap.NewNop())
	return svc, projects, blobs
}

func createProject(t *testing.T, projects *repository.ProjectRepository) *domain.Project {
	t.Helper()
	p, err := projects.Create(context.Background(), "Warehouse", "")
	require.NoError(t, err)
	return p
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	svc, projects, blobs := newTestService(t)
	ctx := context.Background()
	p := createProject(t, projects)

	_, err := svc.Upload(ctx, p.ID, domain.SectionGeneral, "notes.txt", "text/plain", 4, strings.NewReader("hey!"))
	require.ErrorIs(t, err, ErrNotPDF)

	// The document is untouched and nothing was stored.
	got, err := projects.Get(ctx, p.ID)
	require.NoError(t, err)
	att, text := got.SectionAttachment(domain.SectionGeneral)
	assert.Nil(t, att)
	assert.Empty(t, text)
	assert.Zero(t, blobs.Len())
}

func TestUpload_RejectsOversize(t *testing.T) {
	svc, projects, blobs := newTestService(t)
	ctx := context.Background()
	p := createProject(t, projects)

	_, err := svc.Upload(ctx, p.ID, domain.SectionGeneral, "big.pdf", PDFContentType, maxTestBytes+1, bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Zero(t, blobs.Len())
}

func TestUpload_RejectsOversizeBody(t *testing.T) {
	svc, projects, blobs := newTestService(t)
	ctx := context.Background()
	p := createProject(t, projects)

	// Declared size lies; the actual body is over the limit.
	body := bytes.NewReader(make([]byte, maxTestBytes+1))
	_, err := svc.Upload(ctx, p.ID, domain.SectionGeneral, "big.pdf", PDFContentType, 100, body)
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Zero(t, blobs.Len())
}

func TestUpload_UnknownSection(t *testing.T) {
	svc, projects, _ := newTestService(t)
	p := createProject(t, projects)

	_, err := svc.Upload(context.Background(), p.ID, "marketing", "a.pdf", PDFContentType, 1, strings.NewReader("x"))
	require.ErrorIs(t, err, domain.ErrUnknownSection)
}

func TestUpload_MissingProject(t *testing.T) {
	svc, _, blobs := newTestService(t)

	_, err := svc.Upload(context.Background(), "carte-00000-0000", domain.SectionGeneral, "a.pdf", PDFContentType, 1, strings.NewReader("x"))
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, blobs.Len())
}

func TestUpload_StoresAttachmentAndRecordsExtractionFailure(t *testing.T) {
	svc, projects, blobs := newTestService(t)
	ctx := context.Background()
	p := createProject(t, projects)

	// Valid content type, invalid PDF bytes: the upload is accepted and
	// the extraction failure lands in the cached text.
	att, err := svc.Upload(ctx, p.ID, domain.SectionTechnical, "specs.pdf", PDFContentType, 9, strings.NewReader("not a pdf"))
	require.NoError(t, err)
	require.NotNil(t, att)

	assert.Equal(t, "specs.pdf", att.Name)
	assert.Equal(t, PDFContentType, att.Type)
	assert.True(t, strings.HasPrefix(att.URL, "/api/v1/attachments/"))
	assert.Equal(t, 1, blobs.Len())

	assert.Eventually(t, func() bool {
		got, err := projects.Get(ctx, p.ID)
		if err != nil {
			return false
		}
		_, text := got.SectionAttachment(domain.SectionTechnical)
		return strings.HasPrefix(text, "Error extracting PDF content:")
	}, 5*time.Second, 20*time.Millisecond)
}

func TestUpload_ReplacementDiscardsPreviousBlob(t *testing.T) {
	svc, projects, blobs := newTestService(t)
	ctx := context.Background()
	p := createProject(t, projects)

	first, err := svc.Upload(ctx, p.ID, domain.SectionGeneral, "one.pdf", PDFContentType, 3, strings.NewReader("one"))
	require.NoError(t, err)

	second, err := svc.Upload(ctx, p.ID, domain.SectionGeneral, "two.pdf", PDFContentType, 3, strings.NewReader("two"))
	require.NoError(t, err)

	assert.Equal(t, 1, blobs.Len())
	_, err = svc.Blob(refOf(first.URL))
	require.ErrorIs(t, err, blob.ErrNotFound)
	b, err := svc.Blob(refOf(second.URL))
	require.NoError(t, err)
	assert.Equal(t, "two.pdf", b.Name)
}

func TestRemove_ClearsAttachmentAndBlob(t *testing.T) {
	svc, projects, blobs := newTestService(t)
	ctx := context.Background()
	p := createProject(t, projects)

	_, err := svc.Upload(ctx, p.ID, domain.SectionFinancial, "budget.pdf", PDFContentType, 6, strings.NewReader("budget"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, p.ID, domain.SectionFinancial))

	got, err := projects.Get(ctx, p.ID)
	require.NoError(t, err)
	att, text := got.SectionAttachment(domain.SectionFinancial)
	assert.Nil(t, att)
	assert.Empty(t, text)
	assert.Zero(t, blobs.Len())
}

func TestRemove_NoAttachmentIsNoOp(t *testing.T) {
	svc, projects, _ := newTestService(t)
	p := createProject(t, projects)

	require.NoError(t, svc.Remove(context.Background(), p.ID, domain.SectionResources))
	require.NoError(t, svc.Remove(context.Background(), p.ID, domain.SectionResources))
}

func TestRemove_UnknownSection(t *testing.T) {
	svc, projects, _ := newTestService(t)
	p := createProject(t, projects)

	err := svc.Remove(context.Background(), p.ID, "marketing")
	require.ErrorIs(t, err, domain.ErrUnknownSection)
}

func refOf(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}
