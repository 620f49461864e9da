package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
	apperrors "github.com/hms/hms-api/pkg/errors"
)

type Service interface {
	Upload(ctx context.Context, patientID uuid.UUID, fileName, contentType string, size int64, content io.Reader) (*model.Document, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Document, error)
}

type Config struct {
	Dir          string
	MaxSizeBytes int64
}

type service struct {
	repo repository.DocumentRepository
	cfg  Config
}

func NewService(repo repository.DocumentRepository, cfg Config) Service {
	return &service{repo: repo, cfg: cfg}
}

// Upload writes the file under a server-generated unique name, then inserts
// the document row. The two steps are not transactional: a failed insert
// leaves the file on disk.
func (s *service) Upload(ctx context.Context, patientID uuid.UUID, fileName, contentType string, size int64, content io.Reader) (*model.Document, error) {
	if size == 0 {
		return nil, apperrors.Validation("empty file")
	}
	if size > s.cfg.MaxSizeBytes {
		return nil, apperrors.Validation(fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxSizeBytes))
	}

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	safeName := fmt.Sprintf("%s_%s", uuid.New(), filepath.Base(fileName))
	fullPath := filepath.Join(s.cfg.Dir, safeName)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(content, s.cfg.MaxSizeBytes)); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	doc := &model.Document{
		PatientID:   patientID,
		FileName:    fileName,
		FilePath:    "/uploads/" + safeName,
		ContentType: contentType,
		UploadedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	return doc, nil
}

func (s *service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Document, error) {
	documents, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}
