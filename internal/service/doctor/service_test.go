package doctor_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/service/department"
	"github.com/jwalitptl/hims-api/internal/service/doctor"
	"github.com/jwalitptl/hims-api/internal/testutil"
)

func newDoctorRequest(departmentID string) *model.CreateDoctorRequest {
	return &model.CreateDoctorRequest{
		Name:              "Dr. Rao",
		Gender:            "Female",
		DateOfBirth:       "1978-08-12",
		BloodGroup:        "O+",
		DepartmentID:      departmentID,
		ContactNumber1:    "9876543210",
		AadharOrVoterID:   "1234-5678-9012",
		EmailID:           "rao@hims.test",
		Qualification:     "MBBS, MD",
		Specialisation:    "Cardiology",
		YearsOfExperience: 18,
		Address:           "12 Park Street",
		City:              "Kolkata",
		State:             "West Bengal",
		PinCode:           "700016",
	}
}

func TestCreateDoctorCopiesDepartmentName(t *testing.T) {
	clock := testutil.FixedClock()
	deps := testutil.NewDeps(t, clock)
	departments := department.NewService(deps)
	svc := doctor.NewService(deps)
	ctx := context.Background()

	dept, err := departments.CreateDepartment(ctx, &model.CreateDepartmentRequest{
		Name:           "Cardiology",
		Description:    "Heart care",
		ContactNumber1: "0201234567",
		Address:        "Block A",
		EmailID:        "cardio@hims.test",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^D-\d{6}-\d{6}$`, dept.ID)

	doc, err := svc.CreateDoctor(ctx, newDoctorRequest(dept.ID))
	require.NoError(t, err)
	assert.Equal(t, "DR-452310-240301", doc.ID)
	assert.Equal(t, "Cardiology", doc.DepartmentName)
	assert.Equal(t, 45, doc.Age)
	assert.Equal(t, "12-08-1978", doc.DateOfBirth)

	got, err := svc.GetDoctor(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestCreateDoctorUnknownDepartment(t *testing.T) {
	svc := doctor.NewService(testutil.NewDeps(t, testutil.FixedClock()))

	_, err := svc.CreateDoctor(context.Background(), newDoctorRequest("D-000000-000000"))
	appErr := testutil.RequireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid Department ID", appErr.Message)

	all, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateDoctorRejectsBadBirthDate(t *testing.T) {
	deps := testutil.NewDeps(t, testutil.FixedClock())
	seeded := testutil.Seed(t, deps)
	svc := doctor.NewService(deps)

	for _, dob := range []string{"12-08-1978", "2030-01-01"} {
		req := newDoctorRequest(seeded.Department.ID)
		req.DateOfBirth = dob
		_, err := svc.CreateDoctor(context.Background(), req)
		testutil.RequireStatus(t, err, http.StatusBadRequest)
	}
}

func TestUpdateDoctor(t *testing.T) {
	clock := testutil.FixedClock()
	deps := testutil.NewDeps(t, clock)
	seeded := testutil.Seed(t, deps)
	svc := doctor.NewService(deps)
	ctx := context.Background()

	neuro := testutil.Department("D-000002-240301", "Neurology")
	require.NoError(t, deps.Store.Repositories().Departments.Create(ctx, neuro))

	clock.T = time.Date(2024, 8, 12, 9, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateDoctor(ctx, seeded.Doctor.ID, &model.UpdateDoctorRequest{
		DepartmentID:      testutil.StrPtr(neuro.ID),
		YearsOfExperience: testutil.IntPtr(19),
		ContactNumber2:    testutil.StrPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, neuro.ID, updated.DepartmentID)
	assert.Equal(t, "Neurology", updated.DepartmentName)
	assert.Equal(t, 19, updated.YearsOfExperience)
	assert.Equal(t, 46, updated.Age)
	assert.Nil(t, updated.ContactNumber2)

	_, err = svc.UpdateDoctor(ctx, seeded.Doctor.ID, &model.UpdateDoctorRequest{
		DepartmentID: testutil.StrPtr("D-999999-999999"),
	})
	testutil.RequireStatus(t, err, http.StatusBadRequest)

	got, err := svc.GetDoctor(ctx, seeded.Doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neurology", got.DepartmentName)
}

func TestDeleteDoctor(t *testing.T) {
	deps := testutil.NewDeps(t, testutil.FixedClock())
	seeded := testutil.Seed(t, deps)
	svc := doctor.NewService(deps)
	ctx := context.Background()

	_, err := svc.PrepareDeletion(ctx, "DR-000000-000000")
	testutil.RequireStatus(t, err, http.StatusNotFound)

	ticket, err := svc.PrepareDeletion(ctx, seeded.Doctor.ID)
	require.NoError(t, err)

	// A token only authorizes the record it was issued for.
	other := testutil.Doctor("DR-000002-240301", "Dr. Sen", seeded.Department)
	require.NoError(t, deps.Store.Repositories().Doctors.Create(ctx, other))
	err = svc.DeleteDoctor(ctx, other.ID, ticket.Token)
	testutil.RequireStatus(t, err, http.StatusPreconditionFailed)

	require.NoError(t, svc.DeleteDoctor(ctx, seeded.Doctor.ID, ticket.Token))

	all, err := svc.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, other.ID, all[0].ID)
}
