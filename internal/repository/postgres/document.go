package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
)

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, document *model.Document) error {
	query := `
		INSERT INTO documents (patient_id, file_name, file_path, content_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		document.PatientID,
		document.FileName,
		document.FilePath,
		document.ContentType,
		document.UploadedAt,
	).Scan(&document.ID)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *documentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Document, error) {
	query := `
		SELECT * FROM documents
		WHERE patient_id = $1
		ORDER BY uploaded_at DESC
	`
	documents := []*model.Document{}
	if err := r.db.SelectContext(ctx, &documents, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}
