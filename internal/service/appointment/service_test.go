package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/repository"
	apperrors "github.com/hms/hms-api/pkg/errors"
	"github.com/hms/hms-api/pkg/logger"
)

type fakeAppointmentRepo struct {
	nextID       int64
	appointments map[int64]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{nextID: 1, appointments: make(map[int64]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	a.ID = r.nextID
	r.nextID++
	stored := *a
	r.appointments[a.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id int64) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *model.Appointment) error {
	if _, ok := r.appointments[a.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *a
	r.appointments[a.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) ListForDoctor(_ context.Context, doctorUserID string, day *time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.DoctorUserID != doctorUserID {
			continue
		}
		if day != nil {
			y1, m1, d1 := a.StartTime.Date()
			y2, m2, d2 := day.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		copy := *a
		out = append(out, &copy)
	}
	return out, nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *fakeOutboxRepo) FetchUnprocessed(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) MarkProcessed(_ context.Context, id int64) error {
	return nil
}

func newTestService() (Service, *fakeAppointmentRepo, *fakeOutboxRepo) {
	repo := newFakeAppointmentRepo()
	outbox := &fakeOutboxRepo{}
	return NewService(repo, outbox, logger.NewLogger(nil)), repo, outbox
}

func reasonPtr(s string) *string { return &s }

func TestBookCreatesBookedAppointment(t *testing.T) {
	svc, _, outbox := newTestService()

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	apt, err := svc.Book(context.Background(), &model.BookAppointmentRequest{
		PatientID:    uuid.New(),
		DoctorUserID: "drsmith",
		StartTime:    start,
		EndTime:      start.Add(30 * time.Minute),
		Reason:       reasonPtr("Checkup"),
	})

	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusBooked, apt.Status)
	assert.NotZero(t, apt.ID)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, "APPOINTMENT_BOOKED", outbox.events[0].EventType)
}

func TestBookRejectsInvertedWindow(t *testing.T) {
	svc, _, _ := newTestService()

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Book(context.Background(), &model.BookAppointmentRequest{
		PatientID:    uuid.New(),
		DoctorUserID: "drsmith",
		StartTime:    start,
		EndTime:      start,
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestReschedulePreservesDuration(t *testing.T) {
	svc, _, _ := newTestService()

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	apt, err := svc.Book(context.Background(), &model.BookAppointmentRequest{
		PatientID:    uuid.New(),
		DoctorUserID: "drsmith",
		StartTime:    start,
		EndTime:      start.Add(30 * time.Minute),
	})
	require.NoError(t, err)

	newStart := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	rescheduled, err := svc.Reschedule(context.Background(), apt.ID, newStart)
	require.NoError(t, err)

	assert.Equal(t, newStart, rescheduled.StartTime)
	assert.Equal(t, newStart.Add(30*time.Minute), rescheduled.EndTime)
	assert.Equal(t, apt.Duration(), rescheduled.Duration())
	assert.Equal(t, model.AppointmentStatusRescheduled, rescheduled.Status)
}

func TestRescheduleNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Reschedule(context.Background(), 999, time.Now())
	assert.True(t, apperrors.IsNotFound(err))
}

// Rescheduling a cancelled appointment revives it; there is no transition
// guard on the status machine.
func TestRescheduleRevivesCancelledAppointment(t *testing.T) {
	svc, _, _ := newTestService()

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	apt, err := svc.Book(context.Background(), &model.BookAppointmentRequest{
		PatientID:    uuid.New(),
		DoctorUserID: "drsmith",
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), apt.ID)
	require.NoError(t, err)

	rescheduled, err := svc.Reschedule(context.Background(), apt.ID, start.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusRescheduled, rescheduled.Status)
}

func TestCancelIsIdempotentInEffect(t *testing.T) {
	svc, _, _ := newTestService()

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	apt, err := svc.Book(context.Background(), &model.BookAppointmentRequest{
		PatientID:    uuid.New(),
		DoctorUserID: "drsmith",
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
	})
	require.NoError(t, err)

	first, err := svc.Cancel(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, first.Status)

	second, err := svc.Cancel(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, second.Status)
}

func TestCancelNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Cancel(context.Background(), 42)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBookRescheduleCancelFlow(t *testing.T) {
	svc, _, _ := newTestService()

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	apt, err := svc.Book(context.Background(), &model.BookAppointmentRequest{
		PatientID:    uuid.New(),
		DoctorUserID: "drsmith",
		StartTime:    start,
		EndTime:      start.Add(30 * time.Minute),
		Reason:       reasonPtr("Follow-up"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusBooked, apt.Status)

	newStart := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	apt, err = svc.Reschedule(context.Background(), apt.ID, newStart)
	require.NoError(t, err)
	assert.Equal(t, newStart, apt.StartTime)
	assert.Equal(t, time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC), apt.EndTime)
	assert.Equal(t, model.AppointmentStatusRescheduled, apt.Status)

	apt, err = svc.Cancel(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, apt.Status)
}
