package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
	apperrors "github.com/hms/hms-api/pkg/errors"
	"github.com/hms/hms-api/pkg/logger"
)

type Service interface {
	GetDoctorSchedule(ctx context.Context, doctorUserID string, day *time.Time) ([]*model.Appointment, error)
	Book(ctx context.Context, req *model.BookAppointmentRequest) (*model.Appointment, error)
	Reschedule(ctx context.Context, id int64, newStart time.Time) (*model.Appointment, error)
	Cancel(ctx context.Context, id int64) (*model.Appointment, error)
}

type service struct {
	repo   repository.AppointmentRepository
	outbox repository.OutboxRepository
	logger *logger.Logger
}

func NewService(repo repository.AppointmentRepository, outbox repository.OutboxRepository, logger *logger.Logger) Service {
	return &service{repo: repo, outbox: outbox, logger: logger}
}

func (s *service) GetDoctorSchedule(ctx context.Context, doctorUserID string, day *time.Time) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListForDoctor(ctx, doctorUserID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor schedule: %w", err)
	}
	return appointments, nil
}

// Book creates the appointment in Booked state. Overlapping appointments for
// the same doctor are not rejected; the schedule is advisory.
func (s *service) Book(ctx context.Context, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.Validation("end time must be after start time")
	}

	appointment := &model.Appointment{
		PatientID:    req.PatientID,
		DoctorUserID: req.DoctorUserID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       model.AppointmentStatusBooked,
		Reason:       req.Reason,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	s.enqueueEvent(ctx, "APPOINTMENT_BOOKED", appointment)
	return appointment, nil
}

// Reschedule shifts the booked window to the new start, preserving its
// duration exactly, and sets status to Rescheduled regardless of the prior
// status. A cancelled appointment can be revived this way; there is no
// transition guard.
func (s *service) Reschedule(ctx context.Context, id int64, newStart time.Time) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	duration := appointment.Duration()
	appointment.StartTime = newStart
	appointment.EndTime = newStart.Add(duration)
	appointment.Status = model.AppointmentStatusRescheduled

	if err := s.repo.Update(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	s.enqueueEvent(ctx, "APPOINTMENT_RESCHEDULED", appointment)
	return appointment, nil
}

// Cancel sets status to Cancelled unconditionally; cancelling an already
// cancelled appointment is not an error.
func (s *service) Cancel(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointment.Status = model.AppointmentStatusCancelled

	if err := s.repo.Update(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.enqueueEvent(ctx, "APPOINTMENT_CANCELLED", appointment)
	return appointment, nil
}

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
