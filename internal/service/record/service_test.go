package record

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms/hms-api/internal/model"
)

type fakeRecordRepo struct {
	records []*model.MedicalRecord
	nextID  int64
}

func (r *fakeRecordRepo) Create(_ context.Context, rec *model.MedicalRecord) error {
	r.nextID++
	rec.ID = r.nextID
	stored := *rec
	r.records = append(r.records, &stored)
	return nil
}

func (r *fakeRecordRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error) {
	var out []*model.MedicalRecord
	for _, rec := range r.records {
		if rec.PatientID == patientID {
			dup := *rec
			out = append(out, &dup)
		}
	}
	return out, nil
}

func TestAddAssignsIDAndStoresAsIs(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := NewService(repo)

	visit := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rec, err := svc.Add(context.Background(), &model.CreateMedicalRecordRequest{
		PatientID:     uuid.New(),
		DoctorUserID:  "drsmith",
		VisitDate:     &visit,
		Diagnosis:     "Hypertension",
		Prescription:  "Medication A",
		TreatmentPlan: "Monitor BP",
	})
	require.NoError(t, err)

	assert.NotZero(t, rec.ID)
	assert.Equal(t, visit, rec.VisitDate)
	assert.Equal(t, "Hypertension", rec.Diagnosis)
}

func TestAddDefaultsVisitDate(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := NewService(repo)

	before := time.Now()
	rec, err := svc.Add(context.Background(), &model.CreateMedicalRecordRequest{
		PatientID:    uuid.New(),
		DoctorUserID: "drsmith",
	})
	require.NoError(t, err)

	assert.False(t, rec.VisitDate.Before(before))
	assert.False(t, rec.VisitDate.After(time.Now()))
}

func TestListByPatientFiltersByPatient(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := NewService(repo)

	p1, p2 := uuid.New(), uuid.New()
	for _, pid := range []uuid.UUID{p1, p1, p2} {
		_, err := svc.Add(context.Background(), &model.CreateMedicalRecordRequest{
			PatientID:    pid,
			DoctorUserID: "drsmith",
		})
		require.NoError(t, err)
	}

	records, err := svc.ListByPatient(context.Background(), p1)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
