package prescription_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/service/prescription"
	"github.com/jwalitptl/hims-api/internal/testutil"
)

func newRequest(seeded testutil.Records) *model.CreatePrescriptionRequest {
	return &model.CreatePrescriptionRequest{
		PatientID:                  seeded.Patient.ID,
		DoctorID:                   seeded.Doctor.ID,
		Diagnosis:                  "Hypertension",
		Medicine1Name:              "Amlodipine",
		Medicine1DosageDescription: "5 mg once daily",
		Medicine2Name:              testutil.StrPtr("  "),
	}
}

func TestCreatePrescription(t *testing.T) {
	deps := testutil.NewDeps(t, testutil.FixedClock())
	seeded := testutil.Seed(t, deps)
	svc := prescription.NewService(deps)
	ctx := context.Background()

	rx, err := svc.CreatePrescription(ctx, newRequest(seeded))
	require.NoError(t, err)
	assert.Equal(t, "M-452310-240301", rx.ID)
	assert.Equal(t, "Ravi Kumar", rx.PatientName)
	assert.Equal(t, "Dr. Rao", rx.DoctorName)
	assert.Nil(t, rx.Medicine2Name)

	got, err := svc.GetPrescription(ctx, rx.ID)
	require.NoError(t, err)
	assert.Equal(t, rx, got)
}

func TestCreatePrescriptionInvalidReferences(t *testing.T) {
	deps := testutil.NewDeps(t, testutil.FixedClock())
	seeded := testutil.Seed(t, deps)
	svc := prescription.NewService(deps)
	ctx := context.Background()

	req := newRequest(seeded)
	req.PatientID = "P-000000-000000"
	_, err := svc.CreatePrescription(ctx, req)
	appErr := testutil.RequireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid Patient ID", appErr.Message)

	req = newRequest(seeded)
	req.DoctorID = "DR-000000-000000"
	_, err = svc.CreatePrescription(ctx, req)
	appErr = testutil.RequireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid Doctor ID", appErr.Message)

	req = newRequest(seeded)
	req.Diagnosis = ""
	_, err = svc.CreatePrescription(ctx, req)
	testutil.RequireStatus(t, err, http.StatusBadRequest)

	all, err := svc.ListPrescriptions(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdatePrescription(t *testing.T) {
	deps := testutil.NewDeps(t, testutil.FixedClock())
	seeded := testutil.Seed(t, deps)
	svc := prescription.NewService(deps)
	ctx := context.Background()

	rx, err := svc.CreatePrescription(ctx, newRequest(seeded))
	require.NoError(t, err)

	updated, err := svc.UpdatePrescription(ctx, rx.ID, &model.UpdatePrescriptionRequest{
		Comments:                   testutil.StrPtr("Review in two weeks"),
		Medicine2Name:              testutil.StrPtr("Aspirin"),
		Medicine2DosageDescription: testutil.StrPtr("75 mg"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Comments)
	assert.Equal(t, "Review in two weeks", *updated.Comments)
	require.NotNil(t, updated.Medicine2Name)
	assert.Equal(t, "Aspirin", *updated.Medicine2Name)
	assert.Equal(t, "Hypertension", updated.Diagnosis)

	_, err = svc.UpdatePrescription(ctx, rx.ID, &model.UpdatePrescriptionRequest{Medicine1Name: testutil.StrPtr("")})
	testutil.RequireStatus(t, err, http.StatusBadRequest)
}

func TestListPatientPrescriptions(t *testing.T) {
	clock := testutil.FixedClock()
	deps := testutil.NewDeps(t, clock)
	seeded := testutil.Seed(t, deps)
	svc := prescription.NewService(deps)
	ctx := context.Background()

	_, err := svc.CreatePrescription(ctx, newRequest(seeded))
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = svc.CreatePrescription(ctx, newRequest(seeded))
	require.NoError(t, err)

	list, err := svc.ListPatientPrescriptions(ctx, seeded.Patient.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListPatientPrescriptions(ctx, "P-000000-000000")
	appErr := testutil.RequireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Invalid Patient ID", appErr.Message)
}

func TestDeletePrescription(t *testing.T) {
	deps := testutil.NewDeps(t, testutil.FixedClock())
	seeded := testutil.Seed(t, deps)
	svc := prescription.NewService(deps)
	ctx := context.Background()

	rx, err := svc.CreatePrescription(ctx, newRequest(seeded))
	require.NoError(t, err)

	err = svc.DeletePrescription(ctx, rx.ID, "not-a-token")
	testutil.RequireStatus(t, err, http.StatusPreconditionFailed)

	ticket, err := svc.PrepareDeletion(ctx, rx.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeletePrescription(ctx, rx.ID, ticket.Token))

	_, err = svc.GetPrescription(ctx, rx.ID)
	testutil.RequireStatus(t, err, http.StatusNotFound)

	entries, err := deps.Store.Repositories().Audit.ListByEntity(ctx, model.EntityPrescription, rx.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
