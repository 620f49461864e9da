package patient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
	apperrors "github.com/hms/hms-api/pkg/errors"
	"github.com/hms/hms-api/pkg/logger"
)

type Service interface {
	Search(ctx context.Context, query string) ([]*model.Patient, error)
	// Get returns (nil, nil) when the patient does not exist.
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) error
}

type service struct {
	repo   repository.PatientRepository
	outbox repository.OutboxRepository
	logger *logger.Logger
}

func NewService(repo repository.PatientRepository, outbox repository.OutboxRepository, logger *logger.Logger) Service {
	return &service{repo: repo, outbox: outbox, logger: logger}
}

func (s *service) Search(ctx context.Context, query string) ([]*model.Patient, error) {
	patients, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		ID:          uuid.New(),
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Contact:     req.Contact,
		Address:     req.Address,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.enqueueEvent(ctx, "PATIENT_CREATED", patient)
	return patient, nil
}

// Update overwrites the complete mutable field set; callers resend every
// field.
func (s *service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) error {
	patient := &model.Patient{
		ID:          id,
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Contact:     req.Contact,
		Address:     req.Address,
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("patient")
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}

	s.enqueueEvent(ctx, "PATIENT_UPDATED", patient)
	return nil
}

// enqueueEvent is best-effort; a failed enqueue never fails the request.
func (s *service) enqueueEvent(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "failed to marshal outbox payload", "event_type", eventType)
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{EventType: eventType, Payload: data}); err != nil {
		s.logger.Error(err, "failed to enqueue outbox event", "event_type", eventType)
	}
}
