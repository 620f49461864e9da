package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
)

// Medical records are append-only; there is no update or delete surface.
type Service interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error)
	Add(ctx context.Context, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error)
}

type service struct {
	repo repository.MedicalRecordRepository
}

func NewService(repo repository.MedicalRecordRepository) Service {
	return &service{repo: repo}
}

func (s *service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error) {
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

func (s *service) Add(ctx context.Context, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	visitDate := time.Now()
	if req.VisitDate != nil {
		visitDate = *req.VisitDate
	}

	rec := &model.MedicalRecord{
		PatientID:     req.PatientID,
		DoctorUserID:  req.DoctorUserID,
		VisitDate:     visitDate,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		TreatmentPlan: req.TreatmentPlan,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to add medical record: %w", err)
	}
	return rec, nil
}
