package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID          int64     `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FilePath    string    `db:"file_path" json:"file_path"`
	ContentType string    `db:"content_type" json:"content_type"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}
