package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms/hms-api/internal/model"
	apperrors "github.com/hms/hms-api/pkg/errors"
)

type fakeDocumentRepo struct {
	documents []*model.Document
	nextID    int64
}

func (r *fakeDocumentRepo) Create(_ context.Context, d *model.Document) error {
	r.nextID++
	d.ID = r.nextID
	stored := *d
	r.documents = append(r.documents, &stored)
	return nil
}

func (r *fakeDocumentRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Document, error) {
	var out []*model.Document
	for _, d := range r.documents {
		if d.PatientID == patientID {
			copy := *d
			out = append(out, &copy)
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (Service, *fakeDocumentRepo, string) {
	t.Helper()
	dir := t.TempDir()
	repo := &fakeDocumentRepo{}
	svc := NewService(repo, Config{Dir: dir, MaxSizeBytes: 1024})
	return svc, repo, dir
}

func TestUploadWritesFileUnderGeneratedName(t *testing.T) {
	svc, repo, dir := newTestService(t)
	patientID := uuid.New()

	content := "lab results"
	doc, err := svc.Upload(context.Background(), patientID, "results.pdf", "application/pdf",
		int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, "results.pdf", doc.FileName)
	assert.True(t, strings.HasPrefix(doc.FilePath, "/uploads/"))
	assert.True(t, strings.HasSuffix(doc.FilePath, "_results.pdf"))
	assert.NotEqual(t, "/uploads/results.pdf", doc.FilePath, "path must carry a generated prefix")

	onDisk := filepath.Join(dir, strings.TrimPrefix(doc.FilePath, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.Len(t, repo.documents, 1)
	assert.Equal(t, patientID, repo.documents[0].PatientID)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), uuid.New(), "empty.txt", "text/plain", 0, strings.NewReader(""))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, _, _ := newTestService(t)

	big := strings.Repeat("x", 2048)
	_, err := svc.Upload(context.Background(), uuid.New(), "big.bin", "application/octet-stream",
		int64(len(big)), strings.NewReader(big))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestUploadStripsPathFromFilename(t *testing.T) {
	svc, _, dir := newTestService(t)

	content := "x"
	doc, err := svc.Upload(context.Background(), uuid.New(), "../../etc/passwd", "text/plain",
		int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(doc.FilePath, "_passwd"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "..")
}
